package adoptions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/animals"
)

const defaultTerms = "O adotante se compromete a zelar pelo bem-estar do animal, " +
	"fornecendo alimentação adequada, cuidados veterinários e ambiente seguro."

// ContractWriter gera o contrato de adoção em texto e o grava em disco.
type ContractWriter struct {
	dir string
	now func() time.Time
}

func NewContractWriter(dir string) *ContractWriter {
	return &ContractWriter{dir: dir, now: time.Now}
}

// Write renderiza e persiste o contrato, devolvendo o caminho do arquivo e o
// texto completo.
func (w *ContractWriter) Write(an animals.Animal, ad adopters.Adopter, fee float64, strategy string, terms string) (string, string, error) {
	if terms == "" {
		terms = defaultTerms
	}
	now := w.now().UTC()

	sep := strings.Repeat("=", 60)
	var b strings.Builder
	fmt.Fprintln(&b, sep)
	fmt.Fprintln(&b, "CONTRATO DE ADOÇÃO")
	fmt.Fprintln(&b, sep)
	fmt.Fprintf(&b, "Data: %s\n\n", now.Format(time.RFC3339))
	fmt.Fprintln(&b, "DADOS DO ADOTANTE:")
	fmt.Fprintf(&b, "  Nome: %s\n\n", ad.Name)
	fmt.Fprintln(&b, "DADOS DO ANIMAL:")
	fmt.Fprintf(&b, "  Nome: %s\n", an.Name)
	fmt.Fprintf(&b, "  Espécie: %s\n", an.Species)
	fmt.Fprintf(&b, "  Raça: %s\n", an.Breed)
	fmt.Fprintf(&b, "  Sexo: %s\n", an.Sex)
	fmt.Fprintf(&b, "  Idade: %d meses\n", an.AgeMonths)
	fmt.Fprintf(&b, "  Porte: %s\n", an.Size)
	fmt.Fprintf(&b, "  ID: %s\n\n", an.ID)
	fmt.Fprintln(&b, "VALORES:")
	fmt.Fprintf(&b, "  Taxa de Adoção: R$ %.2f\n", fee)
	fmt.Fprintf(&b, "  Tipo de Taxa: %s\n\n", strategy)
	fmt.Fprintln(&b, "TERMOS E CONDIÇÕES:")
	fmt.Fprintf(&b, "  %s\n\n", terms)
	fmt.Fprintln(&b, sep)
	fmt.Fprintln(&b, "Assinatura do Adotante: _______________________")
	fmt.Fprintln(&b, "Data: ___/___/______")
	fmt.Fprintln(&b, sep)

	contract := b.String()

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", "", err
	}
	name := fmt.Sprintf("contrato_%s_%s_%s.txt",
		sanitizeFilename(an.Name),
		sanitizeFilename(ad.Name),
		now.Format("20060102T150405Z"),
	)
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(contract), 0o644); err != nil {
		return "", "", err
	}
	return path, contract, nil
}

func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
			b.WriteRune(c)
		case c == ' ':
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
