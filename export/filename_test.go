package export

import (
	"testing"

	"github.com/trezcool/asistencia/core/register"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Ana", "ana"},
		{"  Ana María  ", "ana_mara"},
		{"Ing. de Sistemas", "ing_de_sistemas"},
		{"A\t B", "a_b"},
		{"1/2024", "12024"},
		{"grupo-2_B", "grupo-2_b"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	sh := Sheet{
		Teacher: "Ana Pérez",
		Class:   register.Class{Career: "Sistemas", Subject: "Base de Datos", Section: "A"},
		Date:    "2024-03-01",
	}
	want := "acta_asistencia_unicen_ana_prez_sistemas_base_de_datos_a_2024-03-01.csv"
	if got := Filename(sh, "csv"); got != want {
		t.Errorf("Filename() = %s, want %s", got, want)
	}
}
