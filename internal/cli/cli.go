// Package cli é o front-end interativo do abrigo: um menu de terminal que
// orquestra os serviços de domínio. Nenhuma regra de negócio vive aqui.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/adoptions"
	"pet-adoption-center/internal/domain/animals"
	"pet-adoption-center/internal/domain/compat"
	"pet-adoption-center/internal/domain/reports"
	"pet-adoption-center/internal/domain/reservations"
	"pet-adoption-center/internal/domain/screening"
	"pet-adoption-center/internal/domain/waitlist"
	"pet-adoption-center/internal/platform/logger"
)

type App struct {
	Animals      *animals.Service
	Adopters     *adopters.Service
	Screening    *screening.Engine
	Scorer       *compat.Scorer
	Waitlist     *waitlist.Service
	Reservations *reservations.Service
	Reports      *reports.Service
	Contracts    *adoptions.ContractWriter

	// Now permite injetar relógio nos testes; nil usa time.Now.
	Now func() time.Time
	Log logger.Logger

	in  *bufio.Reader
	out io.Writer
}

func (app *App) now() time.Time {
	if app.Now != nil {
		return app.Now()
	}
	return time.Now()
}

func NewApp(in io.Reader, out io.Writer) *App {
	return &App{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (app *App) printf(format string, args ...any) {
	fmt.Fprintf(app.out, format, args...)
}

func (app *App) readLine(prompt string) string {
	app.printf("%s", prompt)
	line, err := app.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

func (app *App) readInt(prompt string) int {
	for {
		raw := app.readLine(prompt)
		n, err := strconv.Atoi(raw)
		if err == nil {
			return n
		}
		app.printf("valor inválido, digite um número inteiro\n")
	}
}

func (app *App) readFloat(prompt string) float64 {
	for {
		raw := app.readLine(prompt)
		f, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			return f
		}
		app.printf("valor inválido, digite um número\n")
	}
}

func (app *App) readBool(prompt string) bool {
	for {
		raw := strings.ToLower(app.readLine(prompt + " (s/n): "))
		switch raw {
		case "s", "sim":
			return true
		case "n", "nao", "não":
			return false
		}
		app.printf("responda s ou n\n")
	}
}

// Run é o loop principal do menu. Sai com a opção 0 ou EOF na entrada.
func (app *App) Run(ctx context.Context) error {
	for {
		app.printMenu()
		choice := app.readLine("opção: ")
		if choice == "" {
			return nil
		}

		var err error
		switch choice {
		case "1":
			err = app.registerAnimal(ctx)
		case "2":
			err = app.listAnimals(ctx)
		case "3":
			err = app.registerAdopter(ctx)
		case "4":
			err = app.listAdopters(ctx)
		case "5":
			err = app.amendAdopter(ctx)
		case "6":
			err = app.screenAndScore(ctx)
		case "7":
			err = app.reserve(ctx)
		case "8":
			err = app.confirm(ctx)
		case "9":
			err = app.cancel(ctx)
		case "10":
			err = app.joinWaitlist(ctx)
		case "11":
			err = app.showWaitlist(ctx)
		case "12":
			err = app.leaveWaitlist(ctx)
		case "13":
			err = app.processReturn(ctx)
		case "14":
			err = app.reassess(ctx)
		case "15":
			err = app.sweep(ctx)
		case "16":
			err = app.showReports(ctx)
		case "0":
			app.printf("até logo\n")
			return nil
		default:
			app.printf("opção desconhecida\n")
		}

		if err != nil {
			app.printError(err)
		}
	}
}

func (app *App) printMenu() {
	app.printf(`
===== CENTRO DE ADOÇÃO =====
 1. Cadastrar animal
 2. Listar animais
 3. Cadastrar adotante
 4. Listar adotantes
 5. Atualizar adotante
 6. Triagem e compatibilidade
 7. Reservar animal
 8. Confirmar adoção
 9. Cancelar reserva
10. Entrar na fila de espera
11. Ver fila de espera
12. Sair da fila de espera
13. Processar devolução
14. Reavaliar animal
15. Expirar reservas vencidas
16. Relatórios
 0. Sair
`)
}

// printError traduz os erros de domínio para mensagens de operador. Uma
// reprovação de triagem lista todos os motivos, não só o primeiro.
func (app *App) printError(err error) {
	var rejected *screening.RejectedError
	if errors.As(err, &rejected) {
		app.printf("triagem reprovada:\n")
		for _, r := range rejected.Reasons {
			app.printf("  [%s] %s\n", r.Code, r.Message)
		}
		return
	}
	app.printf("erro: %v\n", err)
}

func (app *App) registerAnimal(ctx context.Context) error {
	in := animals.RegisterInput{
		Name:  app.readLine("nome: "),
		Breed: app.readLine("raça: "),
	}

	switch strings.ToLower(app.readLine("espécie (cachorro/gato): ")) {
	case "cachorro":
		in.Species = animals.SpeciesDog
	case "gato":
		in.Species = animals.SpeciesCat
	default:
		return fmt.Errorf("%w: espécie deve ser cachorro ou gato", animals.ErrInvalidInput)
	}

	in.Sex = animals.Sex(strings.ToUpper(app.readLine("sexo (M/F): ")))
	in.AgeMonths = app.readInt("idade em meses: ")
	in.Size = animals.Size(strings.ToUpper(app.readLine("porte (P/M/G): ")))

	if raw := app.readLine("temperamento (separado por vírgula, vazio se desconhecido): "); raw != "" {
		in.Temperament = strings.Split(raw, ",")
	}

	if in.Species == animals.SpeciesDog {
		in.WalkNeed = app.readInt("necessidade de passeio (0-10): ")
	} else {
		in.Independence = app.readInt("independência (0-10): ")
	}

	a, err := app.Animals.Register(ctx, in)
	if err != nil {
		return err
	}
	app.printf("animal cadastrado: %s (%s)\n", a.Name, a.ID)
	return nil
}

func (app *App) listAnimals(ctx context.Context) error {
	// Varre antes de listar: ninguém deve ver RESERVADO vencido.
	if _, err := app.Reservations.Sweep(ctx, app.now()); err != nil {
		return err
	}

	var f animals.Filter
	if raw := strings.ToUpper(app.readLine("filtrar por status (vazio para todos): ")); raw != "" {
		st := animals.Status(raw)
		f.Status = &st
	}

	list, err := app.Animals.List(ctx, f)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		app.printf("nenhum animal encontrado\n")
		return nil
	}
	for _, a := range list {
		app.printf("%s | %-12s | %-8s | porte %s | %3d meses | %s\n",
			a.ID, a.Name, a.Species, a.Size, a.AgeMonths, a.Status)
	}
	return nil
}

func (app *App) registerAdopter(ctx context.Context) error {
	in := app.readAdopterInput()
	a, err := app.Adopters.Register(ctx, in)
	if err != nil {
		return err
	}
	app.printf("adotante cadastrado: %s (%s)\n", a.Name, a.ID)
	return nil
}

func (app *App) readAdopterInput() adopters.RegisterInput {
	return adopters.RegisterInput{
		Name:        app.readLine("nome: "),
		Age:         app.readInt("idade: "),
		Housing:     adopters.Housing(strings.ToLower(app.readLine("moradia (casa/apartamento): "))),
		HousingArea: app.readFloat("área da moradia (m²): "),
		Experience:  app.readBool("já teve animais antes?"),
		HasChildren: app.readBool("tem crianças em casa?"),
		OtherPets:   app.readBool("tem outros animais?"),
	}
}

func (app *App) listAdopters(ctx context.Context) error {
	list, err := app.Adopters.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		app.printf("nenhum adotante cadastrado\n")
		return nil
	}
	for _, a := range list {
		app.printf("%s | %-15s | %d anos | %s %.0fm²\n",
			a.ID, a.Name, a.Age, a.Housing, a.HousingArea)
	}
	return nil
}

func (app *App) amendAdopter(ctx context.Context) error {
	id := app.readLine("id do adotante: ")
	in := app.readAdopterInput()
	a, err := app.Adopters.Amend(ctx, id, in)
	if err != nil {
		if errors.Is(err, adopters.ErrLocked) {
			app.printf("adotante com reserva ativa; dados bloqueados até a reserva encerrar\n")
			return nil
		}
		return err
	}
	app.printf("adotante atualizado: %s\n", a.Name)
	return nil
}

func (app *App) screenAndScore(ctx context.Context) error {
	adopterID := app.readLine("id do adotante: ")
	animalID := app.readLine("id do animal: ")

	adopter, err := app.Adopters.GetByID(ctx, adopterID)
	if err != nil {
		return err
	}
	animal, err := app.Animals.GetByID(ctx, animalID)
	if err != nil {
		return err
	}

	outcome := app.Screening.Evaluate(adopter, animal.Size)
	if outcome.Approved {
		app.printf("triagem: APROVADO\n")
	} else {
		app.printf("triagem: REPROVADO\n")
		for _, r := range outcome.Reasons {
			app.printf("  [%s] %s\n", r.Code, r.Message)
		}
	}

	result := app.Scorer.Score(adopter, animal)
	app.printf("compatibilidade: %d/100\n", result.Score)
	for _, key := range resultKeys(result) {
		app.printf("  %-28s %.2f\n", key, result.Subscores[key])
	}
	return nil
}

func resultKeys(r compat.Result) []string {
	keys := make([]string, 0, len(r.Subscores))
	for k := range r.Subscores {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (app *App) reserve(ctx context.Context) error {
	animalID := app.readLine("id do animal: ")
	adopterID := app.readLine("id do adotante: ")

	r, err := app.Reservations.Reserve(ctx, animalID, adopterID)
	if err != nil {
		if errors.Is(err, reservations.ErrNotAvailable) {
			app.printf("animal indisponível; deseja entrar na fila de espera?\n")
			if app.readBool("entrar na fila?") {
				return app.enqueue(ctx, animalID, adopterID)
			}
			return nil
		}
		return err
	}
	app.printf("reserva criada: %s (expira em %s)\n", r.ID, r.ExpiresAt.Local())
	return nil
}

func (app *App) confirm(ctx context.Context) error {
	reservationID := app.readLine("id da reserva: ")
	adopterID := app.readLine("id do adotante (vazio para pular verificação): ")

	c, err := app.Reservations.Confirm(ctx, reservationID, adopterID)
	if err != nil {
		return err
	}
	app.printf("adoção confirmada: %s adotou %s\n", c.Adopter.Name, c.Animal.Name)
	app.printf("taxa (%s): R$ %.2f\n", c.FeeStrategy, c.Fee)

	if app.Contracts != nil {
		path, _, err := app.Contracts.Write(c.Animal, c.Adopter, c.Fee, c.FeeStrategy, "")
		if err != nil {
			if app.Log != nil {
				app.Log.Warn("falha ao gravar contrato", "err", err)
			}
		} else {
			app.printf("contrato gravado em %s\n", path)
		}
	}
	return nil
}

func (app *App) cancel(ctx context.Context) error {
	reservationID := app.readLine("id da reserva: ")
	r, err := app.Reservations.Cancel(ctx, reservationID)
	if err != nil {
		return err
	}
	app.printf("reserva %s cancelada\n", r.ID)
	return nil
}

func (app *App) joinWaitlist(ctx context.Context) error {
	animalID := app.readLine("id do animal: ")
	adopterID := app.readLine("id do adotante: ")
	return app.enqueue(ctx, animalID, adopterID)
}

func (app *App) enqueue(ctx context.Context, animalID, adopterID string) error {
	e, err := app.Waitlist.Enqueue(ctx, animalID, adopterID)
	if err != nil {
		if errors.Is(err, waitlist.ErrDuplicateEntry) {
			app.printf("adotante já está na fila deste animal\n")
			return nil
		}
		return err
	}
	app.printf("entrou na fila com score %d\n", e.Score)
	return nil
}

func (app *App) showWaitlist(ctx context.Context) error {
	animalID := app.readLine("id do animal: ")
	entries, err := app.Waitlist.Ranking(ctx, animalID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		app.printf("fila vazia\n")
		return nil
	}
	for i, e := range entries {
		app.printf("%2d. adotante %s | score %d | desde %s\n",
			i+1, e.AdopterID, e.Score, e.EnqueuedAt.Local())
	}
	return nil
}

func (app *App) leaveWaitlist(ctx context.Context) error {
	animalID := app.readLine("id do animal: ")
	adopterID := app.readLine("id do adotante: ")
	if err := app.Waitlist.Withdraw(ctx, animalID, adopterID); err != nil {
		return err
	}
	app.printf("removido da fila (se estava nela)\n")
	return nil
}

func (app *App) processReturn(ctx context.Context) error {
	animalID := app.readLine("id do animal: ")
	reason := app.readLine("motivo da devolução: ")
	healthIssue := app.readBool("há problema de saúde ou comportamento?")

	a, err := app.Animals.ProcessReturn(ctx, animalID, reason, healthIssue)
	if err != nil {
		return err
	}
	app.printf("devolução registrada; %s agora está %s\n", a.Name, a.Status)
	return nil
}

func (app *App) reassess(ctx context.Context) error {
	animalID := app.readLine("id do animal: ")
	fit := app.readBool("animal apto para adoção?")

	a, err := app.Animals.Reassess(ctx, animalID, fit)
	if err != nil {
		return err
	}
	app.printf("reavaliação registrada; %s agora está %s\n", a.Name, a.Status)
	return nil
}

func (app *App) sweep(ctx context.Context) error {
	expired, err := app.Reservations.Sweep(ctx, app.now())
	if err != nil {
		return err
	}
	app.printf("%d reserva(s) expirada(s)\n", len(expired))
	for _, id := range expired {
		app.printf("  %s\n", id)
	}
	return nil
}

func (app *App) showReports(ctx context.Context) error {
	top, err := app.Reports.TopAdoptable(ctx, 5)
	if err != nil {
		return err
	}
	app.printf("--- top animais adotáveis ---\n")
	if len(top) == 0 {
		app.printf("sem dados suficientes\n")
	}
	for i, r := range top {
		app.printf("%d. %-12s | média %.1f | %d adotante(s) elegível(is)\n",
			i+1, r.Animal.Name, r.MeanScore, r.Eligible)
	}

	byGroup, err := app.Reports.AdoptionsBySpeciesSize(ctx)
	if err != nil {
		return err
	}
	app.printf("--- adoções por espécie e porte ---\n")
	for key, n := range byGroup {
		app.printf("%s %s: %d\n", key.Species, key.Size, n)
	}

	avg, ok, err := app.Reports.AvgTimeToAdoption(ctx)
	if err != nil {
		return err
	}
	app.printf("--- tempo médio até adoção ---\n")
	if ok {
		app.printf("%.1f dias\n", avg.Hours()/24)
	} else {
		app.printf("nenhuma adoção registrada\n")
	}

	byReason, err := app.Reports.ReturnsByReason(ctx)
	if err != nil {
		return err
	}
	app.printf("--- devoluções por motivo ---\n")
	for reason, n := range byReason {
		app.printf("%s: %d\n", reason, n)
	}

	rates, err := app.Reports.Rates(ctx)
	if err != nil {
		return err
	}
	app.printf("--- taxas ---\n")
	app.printf("animais: %d | adotados: %d | devolvidos: %d\n",
		rates.TotalAnimals, rates.Adopted, rates.Returned)
	app.printf("taxa de adoção: %.0f%% | taxa de devolução: %.0f%%\n",
		rates.AdoptionRate*100, rates.ReturnRate*100)
	return nil
}
