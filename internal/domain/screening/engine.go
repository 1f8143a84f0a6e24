// Package screening avalia adotantes contra as políticas de elegibilidade.
// Puro: mesmo adotante + política produzem sempre o mesmo resultado, com os
// motivos de reprovação na mesma ordem.
package screening

import (
	"fmt"
	"strings"

	"pet-adoption-center/internal/config"
	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/animals"
)

// Reason identifica uma regra reprovada: código estável para máquina e
// mensagem para o adotante.
type Reason struct {
	Code    string
	Message string
}

// RejectedError carrega a lista completa de regras reprovadas, na ordem de
// avaliação. Nunca é truncado para o primeiro motivo.
type RejectedError struct {
	Reasons []Reason
}

func (e *RejectedError) Error() string {
	codes := make([]string, len(e.Reasons))
	for i, r := range e.Reasons {
		codes[i] = r.Code
	}
	return "screening rejected: " + strings.Join(codes, ", ")
}

type Outcome struct {
	Approved bool
	Reasons  []Reason
}

// Err devolve o resultado como RejectedError quando reprovado, nil quando
// aprovado.
func (o Outcome) Err() error {
	if o.Approved {
		return nil
	}
	return &RejectedError{Reasons: o.Reasons}
}

// Rule é uma política independente de elegibilidade. Check devolve nil
// quando o adotante passa.
type Rule interface {
	Code() string
	Check(a adopters.Adopter, size animals.Size) *Reason
}

// Engine aplica as regras em ordem fixa e coleta todas as reprovações.
type Engine struct {
	rules []Rule
}

// NewEngine monta as regras a partir da política carregada. Os limiares vêm
// da configuração, não do código.
func NewEngine(p config.Policies) *Engine {
	return &Engine{
		rules: []Rule{
			minimumAgeRule{min: p.MinimumAge},
			largeHousingRule{allowed: adopters.Housing(p.LargeAllowedHousing)},
			largeAreaRule{min: p.LargeMinArea},
		},
	}
}

// Evaluate avalia o adotante para um animal do porte dado. Size vazio avalia
// apenas as regras independentes de animal.
func (e *Engine) Evaluate(a adopters.Adopter, size animals.Size) Outcome {
	var reasons []Reason
	for _, rule := range e.rules {
		if r := rule.Check(a, size); r != nil {
			reasons = append(reasons, *r)
		}
	}
	return Outcome{Approved: len(reasons) == 0, Reasons: reasons}
}

// EvaluateAdopter avalia o adotante sem animal alvo.
func (e *Engine) EvaluateAdopter(a adopters.Adopter) Outcome {
	return e.Evaluate(a, "")
}

type minimumAgeRule struct {
	min int
}

func (r minimumAgeRule) Code() string { return "idade_minima" }

func (r minimumAgeRule) Check(a adopters.Adopter, _ animals.Size) *Reason {
	if a.Age >= r.min {
		return nil
	}
	return &Reason{
		Code:    r.Code(),
		Message: fmt.Sprintf("adotante deve ter no mínimo %d anos (idade atual: %d)", r.min, a.Age),
	}
}

type largeHousingRule struct {
	allowed adopters.Housing
}

func (r largeHousingRule) Code() string { return "moradia_permitida_porte_g" }

func (r largeHousingRule) Check(a adopters.Adopter, size animals.Size) *Reason {
	if size != animals.SizeLarge || a.Housing == r.allowed {
		return nil
	}
	return &Reason{
		Code:    r.Code(),
		Message: fmt.Sprintf("animais de porte grande exigem moradia do tipo %q (atual: %s)", r.allowed, a.Housing),
	}
}

type largeAreaRule struct {
	min float64
}

func (r largeAreaRule) Code() string { return "area_minima_porte_g" }

func (r largeAreaRule) Check(a adopters.Adopter, size animals.Size) *Reason {
	if size != animals.SizeLarge || a.HousingArea >= r.min {
		return nil
	}
	return &Reason{
		Code:    r.Code(),
		Message: fmt.Sprintf("área mínima para porte grande é %.0fm² (disponível: %.0fm²)", r.min, a.HousingArea),
	}
}
