// Package bot routes incoming chat events: commands start and control the
// entry wizard, buttons and free text drive it, and completed drafts are
// appended to the user's ledger.
package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"finanzas/internal/amqp"
	"finanzas/internal/catalog"
	"finanzas/internal/config"
	"finanzas/internal/core"
	"finanzas/internal/ledger"
	"finanzas/internal/log"
	"finanzas/internal/report"
	"finanzas/internal/session"
)

// UpdateKind distinguishes the three input shapes the messaging adapter
// produces.
type UpdateKind int

const (
	UpdateCommand UpdateKind = iota
	UpdateButton
	UpdateText
)

// Update is one normalized incoming event. Command carries the bare command
// name; Text carries the callback payload or the message text.
type Update struct {
	UserID  int64
	Kind    UpdateKind
	Command string
	Text    string
}

// Messenger is the outbound side of the chat. Choices render as an inline
// keyboard when present.
type Messenger interface {
	Send(ctx context.Context, userID int64, text string, choices ...session.Choice) error
}

const (
	cmdStart   = "start"
	cmdNew     = "nuevo"
	cmdCancel  = "cancelar"
	cmdWhoAmI  = "whoami"
	cmdSummary = "resumen"
	cmdBalance = "saldos"
)

const genericErrorText = "Algo salió mal. Tu registro no se guardó; usa /nuevo para intentarlo de nuevo."

// Engine wires sessions, catalogs, and the ledger behind the chat surface.
type Engine struct {
	cfg       *config.Config
	store     ledger.Store
	catalogs  *catalog.Loader
	sessions  *session.Manager
	agg       *ledger.Aggregator
	messenger Messenger
	logger    *log.Logger
	now       func() time.Time
}

func New(cfg *config.Config, store ledger.Store, catalogs *catalog.Loader, messenger Messenger, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Engine{
		cfg:       cfg,
		store:     store,
		catalogs:  catalogs,
		sessions:  session.NewManager(),
		agg:       ledger.NewAggregator(store, logger),
		messenger: messenger,
		logger:    logger.WithComponent(log.ComponentBot),
		now:       time.Now,
	}
}

// HandleUpdate processes one incoming event. Updates from users outside the
// configured map are dropped without a reply.
func (e *Engine) HandleUpdate(ctx context.Context, u Update) error {
	if _, ok := e.cfg.SpreadsheetFor(u.UserID); !ok {
		e.logger.DebugContext(ctx, "ignoring unauthorized user", log.FieldUserID, u.UserID)
		return nil
	}

	logger := e.logger.With(log.FieldTraceID, uuid.NewString(), log.FieldUserID, u.UserID)

	switch u.Kind {
	case UpdateCommand:
		return e.handleCommand(ctx, logger, u)
	case UpdateButton:
		ev := session.Event{Kind: session.EventButton, Value: u.Text}
		if u.Text == session.BtnCancel {
			ev = session.Event{Kind: session.EventCancel}
		}
		return e.advance(ctx, logger, u.UserID, ev)
	case UpdateText:
		return e.advance(ctx, logger, u.UserID, session.Event{Kind: session.EventText, Value: u.Text})
	}
	return nil
}

func (e *Engine) handleCommand(ctx context.Context, logger *log.Logger, u Update) error {
	logger.InfoContext(ctx, "command received", "command", u.Command)

	switch u.Command {
	case cmdStart:
		return e.messenger.Send(ctx, u.UserID,
			"Hola. Soy tu asistente de finanzas.\n"+
				"/nuevo registra un ingreso, egreso o traslado.\n"+
				"/resumen muestra la semana y el mes en curso.\n"+
				"/saldos muestra tus cuentas.\n"+
				"/cancelar aborta el registro en curso.")

	case cmdNew:
		if _, err := e.catalogs.Refresh(ctx, u.UserID); err != nil {
			logger.ErrorContext(ctx, "catalog refresh failed", log.FieldError, err)
			return e.messenger.Send(ctx, u.UserID, genericErrorText)
		}
		s, reply := session.Start(u.UserID)
		e.sessions.Put(s)
		return e.messenger.Send(ctx, u.UserID, reply.Text, reply.Choices...)

	case cmdCancel:
		return e.advance(ctx, logger, u.UserID, session.Event{Kind: session.EventCancel})

	case cmdWhoAmI:
		sheet, _ := e.cfg.SpreadsheetFor(u.UserID)
		return e.messenger.Send(ctx, u.UserID,
			fmt.Sprintf("Usuario: %d\nHoja de cálculo: %s", u.UserID, sheet))

	case cmdSummary:
		return e.sendSummaries(ctx, logger, u.UserID)

	case cmdBalance:
		return e.sendBalances(ctx, logger, u.UserID)

	default:
		return e.messenger.Send(ctx, u.UserID, "No conozco ese comando. Prueba /nuevo, /resumen o /saldos.")
	}
}

// advance feeds one event through the wizard and performs the resulting
// effect.
func (e *Engine) advance(ctx context.Context, logger *log.Logger, userID int64, ev session.Event) error {
	cat, err := e.catalogs.Load(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "catalog load failed", log.FieldError, err)
		e.sessions.Reset(userID)
		return e.messenger.Send(ctx, userID, genericErrorText)
	}

	s := e.sessions.Get(userID)
	next, reply, effect := session.Advance(s, ev, cat, e.now())
	e.sessions.Put(next)

	logger.DebugContext(ctx, "wizard transition",
		log.FieldStep, next.Step.String(),
		log.FieldKind, string(next.Draft.Kind))

	if effect == session.EffectSave {
		return e.save(ctx, logger, next)
	}
	if reply.Text == "" {
		return nil
	}
	return e.messenger.Send(ctx, userID, reply.Text, reply.Choices...)
}

// save commits the draft. The append is at most once: on failure the session
// is reset and the user told, never retried.
func (e *Engine) save(ctx context.Context, logger *log.Logger, s session.Session) error {
	sheet, row, err := encodeDraft(s.Draft)
	if err != nil {
		logger.ErrorContext(ctx, "draft failed validation", log.FieldError, err)
		e.sessions.Reset(s.UserID)
		return e.messenger.Send(ctx, s.UserID, genericErrorText)
	}

	if err := e.store.AppendRow(ctx, s.UserID, sheet, row); err != nil {
		logger.ErrorContext(ctx, "ledger append failed",
			log.FieldSheet, sheet, log.FieldError, err)
		e.sessions.Reset(s.UserID)
		return e.messenger.Send(ctx, s.UserID, genericErrorText)
	}

	logger.InfoContext(ctx, "transaction saved",
		log.FieldSheet, sheet,
		log.FieldKind, string(s.Draft.Kind),
		log.FieldAmount, s.Draft.Amount.String())

	e.sessions.Reset(s.UserID)
	return e.messenger.Send(ctx, s.UserID, "Guardado.\n\n"+session.Summary(s.Draft))
}

// encodeDraft validates the finished draft and renders its ledger row.
func encodeDraft(d session.Draft) (sheet string, row []string, err error) {
	switch d.Kind {
	case core.KindIncome:
		in := core.Income{
			Date: d.Date, Source: d.Source, Category: d.Category,
			Amount: d.Amount, Method: d.Method, Bank: d.Bank, Note: d.Note,
		}
		if err := in.Validate(); err != nil {
			return "", nil, err
		}
		return ledger.SheetIncome, ledger.EncodeIncome(in), nil

	case core.KindExpense:
		ex := core.Expense{
			Date: d.Date, Category: d.Category,
			Amount: d.Amount, Method: d.Method, Bank: d.Bank, Note: d.Note,
		}
		if err := ex.Validate(); err != nil {
			return "", nil, err
		}
		return ledger.SheetExpense, ledger.EncodeExpense(ex), nil

	case core.KindTransfer:
		tr := core.Transfer{
			Date: d.Date, From: d.From, To: d.To,
			AmountOut: d.Amount, AmountIn: d.AmountIn, Note: d.Note,
		}
		if err := tr.Validate(); err != nil {
			return "", nil, err
		}
		return ledger.SheetTransfer, ledger.EncodeTransfer(tr), nil
	}
	return "", nil, fmt.Errorf("%w: draft has no kind", core.ErrInvalidInput)
}

// sendSummaries delivers the running week and the month to date.
func (e *Engine) sendSummaries(ctx context.Context, logger *log.Logger, userID int64) error {
	now := e.now()
	for _, p := range []core.Period{core.ISOWeek(now), core.MonthToDate(now)} {
		s, err := e.agg.Summarize(ctx, userID, p)
		if err != nil {
			logger.ErrorContext(ctx, "summarize failed",
				log.FieldPeriod, p.Label, log.FieldError, err)
			return e.messenger.Send(ctx, userID, genericErrorText)
		}
		if err := e.messenger.Send(ctx, userID, report.Summary(s)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) sendBalances(ctx context.Context, logger *log.Logger, userID int64) error {
	cat, err := e.catalogs.Load(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "catalog load failed", log.FieldError, err)
		return e.messenger.Send(ctx, userID, genericErrorText)
	}

	b, err := e.agg.Balances(ctx, userID, ledger.BalanceOptions{
		SavingsAccounts:    cat.SavingsAccounts,
		InvestmentAccounts: cat.InvestmentAccounts,
		FXRate:             e.cfg.InvestmentFXRate,
	})
	if err != nil {
		logger.ErrorContext(ctx, "balance replay failed", log.FieldError, err)
		return e.messenger.Send(ctx, userID, genericErrorText)
	}
	return e.messenger.Send(ctx, userID, report.Balances(b))
}

// RunSummaryJob computes and delivers one scheduled summary. It backs both
// the queue worker and the inline dispatcher.
func (e *Engine) RunSummaryJob(ctx context.Context, userID int64, period amqp.PeriodKind) error {
	now := e.now()
	var p core.Period
	switch period {
	case amqp.PeriodWeekly:
		p = core.ISOWeek(now)
	case amqp.PeriodMonthly:
		p = core.MonthToDate(now)
	default:
		return fmt.Errorf("unknown period kind %q", period)
	}

	s, err := e.agg.Summarize(ctx, userID, p)
	if err != nil {
		return fmt.Errorf("summarize %s for user %d: %w", p.Label, userID, err)
	}
	return e.messenger.Send(ctx, userID, report.Summary(s))
}
