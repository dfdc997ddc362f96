package session

import (
	"fmt"
	"strings"
	"time"

	"finanzas/internal/catalog"
	"finanzas/internal/core"
)

// EventKind is the kind of user input feeding the machine.
type EventKind int

const (
	EventButton EventKind = iota
	EventText
	EventCancel
)

// Event is one discrete user input.
type Event struct {
	Kind  EventKind
	Value string
}

// Choice is a selectable button offered alongside a reply.
type Choice struct {
	Label string
	Data  string
}

// Reply is what the user should see after a transition.
type Reply struct {
	Text    string
	Choices []Choice
}

// Effect is the side effect the caller must perform after a transition.
type Effect int

const (
	EffectNone Effect = iota
	EffectSave // commit the draft, then reset the session
)

// Button payloads with fixed meaning; list selections carry the value text.
const (
	BtnIncome    = "ING"
	BtnExpense   = "EGR"
	BtnTransfer  = "TRA"
	BtnToday     = "HOY"
	BtnYesterday = "AYER"
	BtnOtherDate = "OTRA"
	BtnSave      = "SAVE"
	BtnEdit      = "EDIT"
	BtnCancel    = "CANCEL"
)

const canceledText = "Cancelado. Usa /nuevo cuando quieras."

// Start begins the wizard for a user: an empty draft at choose_type.
func Start(userID int64) (Session, Reply) {
	s := Session{UserID: userID, Step: StepChooseType}
	return s, promptFor(s, nil)
}

// Advance is the pure transition function of the wizard. Given the current
// session and one input it returns the next session, the reply to show, and
// the side effect the caller must perform. Unexpected input re-prompts the
// current step and leaves the session unchanged. Cancel is accepted from any
// step and resets to idle.
func Advance(s Session, ev Event, cat *catalog.Catalog, now time.Time) (Session, Reply, Effect) {
	if ev.Kind == EventCancel {
		return Session{UserID: s.UserID, Step: StepIdle}, Reply{Text: canceledText}, EffectNone
	}

	switch s.Step {
	case StepIdle:
		return s, Reply{Text: "Usa /nuevo para iniciar un registro."}, EffectNone

	case StepChooseType:
		if ev.Kind != EventButton {
			return reprompt(s, cat)
		}
		switch ev.Value {
		case BtnIncome:
			s.Draft = Draft{Kind: core.KindIncome}
		case BtnExpense:
			s.Draft = Draft{Kind: core.KindExpense}
		case BtnTransfer:
			s.Draft = Draft{Kind: core.KindTransfer}
		default:
			return reprompt(s, cat)
		}
		s.Step = StepChooseDate
		return s, promptFor(s, cat), EffectNone

	case StepChooseDate:
		if ev.Kind != EventButton {
			return reprompt(s, cat)
		}
		switch ev.Value {
		case BtnToday:
			s.Draft.Date = core.DateOf(now)
		case BtnYesterday:
			s.Draft.Date = core.DateOf(now.AddDate(0, 0, -1))
		case BtnOtherDate:
			s.Step = StepEnterDate
			return s, promptFor(s, cat), EffectNone
		default:
			return reprompt(s, cat)
		}
		s.Step = afterDate(s.Draft.Kind)
		return s, promptFor(s, cat), EffectNone

	case StepEnterDate:
		if ev.Kind != EventText {
			return reprompt(s, cat)
		}
		d, err := core.ParseDate(ev.Value)
		if err != nil {
			return s, Reply{Text: "Fecha inválida. Usa YYYY-MM-DD (ej: 2026-01-30)."}, EffectNone
		}
		s.Draft.Date = d
		s.Step = afterDate(s.Draft.Kind)
		return s, promptFor(s, cat), EffectNone

	case StepChooseSource:
		if ev.Kind != EventButton || !catalog.Has(cat.Sources, ev.Value) {
			return reprompt(s, cat)
		}
		s.Draft.Source = ev.Value
		s.Step = StepChooseCategory
		return s, promptFor(s, cat), EffectNone

	case StepChooseCategory:
		if ev.Kind != EventButton || !catalog.Has(categoriesFor(s.Draft.Kind, cat), ev.Value) {
			return reprompt(s, cat)
		}
		s.Draft.Category = ev.Value
		s.Step = StepEnterAmount
		return s, promptFor(s, cat), EffectNone

	case StepEnterAmount:
		if ev.Kind != EventText {
			return reprompt(s, cat)
		}
		amount, err := core.ParseAmount(ev.Value)
		if err != nil {
			return s, Reply{Text: "Monto inválido. Ejemplos válidos: 75 | 125.50"}, EffectNone
		}
		s.Draft.Amount = amount
		if s.Draft.Kind == core.KindTransfer {
			s.Step = StepEnterDestAmount
		} else {
			s.Step = StepChooseMethod
		}
		return s, promptFor(s, cat), EffectNone

	case StepChooseMethod:
		if ev.Kind != EventButton || !catalog.Has(cat.Methods, ev.Value) {
			return reprompt(s, cat)
		}
		s.Draft.Method = ev.Value
		if ev.Value == core.MethodTransfer {
			s.Step = StepChooseBank
		} else {
			s.Draft.Bank = ""
			s.Step = StepEnterNote
		}
		return s, promptFor(s, cat), EffectNone

	case StepChooseBank:
		if ev.Kind != EventButton || !catalog.Has(cat.Banks, ev.Value) {
			return reprompt(s, cat)
		}
		s.Draft.Bank = ev.Value
		s.Step = StepEnterNote
		return s, promptFor(s, cat), EffectNone

	case StepChooseFrom:
		if ev.Kind != EventButton || !catalog.Has(cat.Accounts, ev.Value) {
			return reprompt(s, cat)
		}
		s.Draft.From = ev.Value
		s.Step = StepChooseTo
		return s, promptFor(s, cat), EffectNone

	case StepChooseTo:
		if ev.Kind != EventButton || !catalog.Has(cat.Accounts, ev.Value) || ev.Value == s.Draft.From {
			return reprompt(s, cat)
		}
		s.Draft.To = ev.Value
		s.Step = StepEnterAmount
		return s, promptFor(s, cat), EffectNone

	case StepEnterDestAmount:
		if ev.Kind != EventText {
			return reprompt(s, cat)
		}
		amount, err := core.ParseDestinationAmount(ev.Value)
		if err != nil {
			return s, Reply{Text: "Monto inválido. Escribe el monto recibido, o 0 si es igual al enviado."}, EffectNone
		}
		s.Draft.AmountIn = amount
		s.Step = StepEnterNote
		return s, promptFor(s, cat), EffectNone

	case StepEnterNote:
		if ev.Kind != EventText {
			return reprompt(s, cat)
		}
		note := strings.TrimSpace(ev.Value)
		if note == "-" {
			note = ""
		}
		s.Draft.Note = note
		s.Step = StepConfirm
		return s, promptFor(s, cat), EffectNone

	case StepConfirm:
		if ev.Kind != EventButton {
			return reprompt(s, cat)
		}
		switch ev.Value {
		case BtnSave:
			return s, Reply{}, EffectSave
		case BtnEdit:
			// Restart the flow, keeping the chosen type.
			s = Session{UserID: s.UserID, Step: StepChooseDate, Draft: Draft{Kind: s.Draft.Kind}}
			return s, Reply{Text: "Ok, editemos. " + promptFor(s, cat).Text, Choices: promptFor(s, cat).Choices}, EffectNone
		default:
			return reprompt(s, cat)
		}
	}

	return s, Reply{Text: "Usa /nuevo para iniciar un registro."}, EffectNone
}

func reprompt(s Session, cat *catalog.Catalog) (Session, Reply, Effect) {
	r := promptFor(s, cat)
	r.Text = "No entendí. " + r.Text
	return s, r, EffectNone
}

func afterDate(kind core.Kind) Step {
	switch kind {
	case core.KindIncome:
		return StepChooseSource
	case core.KindTransfer:
		return StepChooseFrom
	default:
		return StepChooseCategory
	}
}

func categoriesFor(kind core.Kind, cat *catalog.Catalog) []string {
	if kind == core.KindIncome {
		return cat.IncomeCategories
	}
	return cat.ExpenseCategories
}

// promptFor renders the prompt and keyboard for the session's current step.
func promptFor(s Session, cat *catalog.Catalog) Reply {
	switch s.Step {
	case StepChooseType:
		return Reply{
			Text: "¿Qué quieres registrar?",
			Choices: []Choice{
				{Label: "Ingreso", Data: BtnIncome},
				{Label: "Egreso", Data: BtnExpense},
				{Label: "Traslado", Data: BtnTransfer},
				cancelChoice(),
			},
		}
	case StepChooseDate:
		return Reply{
			Text: "Fecha:",
			Choices: []Choice{
				{Label: "Hoy", Data: BtnToday},
				{Label: "Ayer", Data: BtnYesterday},
				{Label: "Otra fecha", Data: BtnOtherDate},
				cancelChoice(),
			},
		}
	case StepEnterDate:
		return Reply{Text: "Escribe la fecha en formato YYYY-MM-DD (ej: 2026-01-30)."}
	case StepChooseSource:
		return listReply("Ingreso: elige la FUENTE:", cat.Sources)
	case StepChooseCategory:
		if s.Draft.Kind == core.KindIncome {
			return listReply("Ingreso: elige la CATEGORÍA:", cat.IncomeCategories)
		}
		return listReply("Egreso: elige la CATEGORÍA:", cat.ExpenseCategories)
	case StepEnterAmount:
		return Reply{Text: "Escribe el MONTO (ej: 125 o 125.50)."}
	case StepChooseMethod:
		return listReply("Elige el MÉTODO:", cat.Methods)
	case StepChooseBank:
		return listReply("Elige el BANCO:", cat.Banks)
	case StepChooseFrom:
		return listReply("Traslado: elige la cuenta de ORIGEN:", cat.Accounts)
	case StepChooseTo:
		var others []string
		for _, a := range cat.Accounts {
			if a != s.Draft.From {
				others = append(others, a)
			}
		}
		return listReply("Elige la cuenta de DESTINO:", others)
	case StepEnterDestAmount:
		return Reply{Text: "Monto que llega al destino (0 si es igual al enviado)."}
	case StepEnterNote:
		return Reply{Text: "Nota (opcional). Escribe texto o escribe: - para dejar vacío."}
	case StepConfirm:
		return Reply{
			Text: Summary(s.Draft),
			Choices: []Choice{
				{Label: "Guardar", Data: BtnSave},
				{Label: "Editar", Data: BtnEdit},
				cancelChoice(),
			},
		}
	}
	return Reply{Text: "Usa /nuevo para iniciar un registro."}
}

func listReply(text string, items []string) Reply {
	choices := make([]Choice, 0, len(items)+1)
	for _, it := range items {
		choices = append(choices, Choice{Label: it, Data: it})
	}
	choices = append(choices, cancelChoice())
	return Reply{Text: text, Choices: choices}
}

func cancelChoice() Choice {
	return Choice{Label: "Cancelar", Data: BtnCancel}
}

// Summary renders the confirmation text for a draft.
func Summary(d Draft) string {
	var b strings.Builder
	b.WriteString("Resumen:\n")
	switch d.Kind {
	case core.KindIncome:
		fmt.Fprintf(&b, "Tipo: Ingreso\nFecha: %s\nFuente: %s\nCategoría: %s\nMonto: %s\nMétodo: %s\nBanco: %s\nNota: %s",
			d.Date, d.Source, d.Category, d.Amount.StringFixed(2), d.Method, d.Bank, d.Note)
	case core.KindExpense:
		fmt.Fprintf(&b, "Tipo: Egreso\nFecha: %s\nCategoría: %s\nMonto: %s\nMétodo: %s\nBanco: %s\nNota: %s",
			d.Date, d.Category, d.Amount.StringFixed(2), d.Method, d.Bank, d.Note)
	case core.KindTransfer:
		in := "igual al enviado"
		if !d.AmountIn.IsZero() {
			in = d.AmountIn.StringFixed(2)
		}
		fmt.Fprintf(&b, "Tipo: Traslado\nFecha: %s\nOrigen: %s\nDestino: %s\nMonto enviado: %s\nMonto recibido: %s\nNota: %s",
			d.Date, d.From, d.To, d.Amount.StringFixed(2), in, d.Note)
	}
	return b.String()
}
