// Package bot interprets inbound chat traffic: free text becomes logged
// expenses, commands become reports, and callback tokens drive the two-step
// category correction flow. The Telegram transport lives in telegram.go;
// everything here speaks plain Reply values so it can be exercised without
// the network.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"kharcha/internal/core"
	"kharcha/internal/ledger"
	"kharcha/internal/report"
)

// Reply is one outbound message, optionally carrying an inline keyboard of
// labeled interaction tokens.
type Reply struct {
	Text     string
	Keyboard [][]Button
}

type Button struct {
	Label string
	Token string
}

// EventSink receives ledger mutation events. Publishing is best-effort:
// failures are logged and never surfaced to the user.
type EventSink interface {
	TransactionAppended(ctx context.Context, row int, t core.Transaction) error
	CategoryCorrected(ctx context.Context, row int, category, typ string) error
	RowDeleted(ctx context.Context, row int) error
}

const recentLimit = 10

type Engine struct {
	store       ledger.Ledger
	catalog     core.Catalog
	categorizer core.Categorizer
	deriver     core.TypeDeriver
	events      EventSink // may be nil
	summaryDays int
	now         func() time.Time
}

func NewEngine(store ledger.Ledger, catalog core.Catalog, categorizer core.Categorizer, deriver core.TypeDeriver, events EventSink, summaryDays int) *Engine {
	if summaryDays <= 0 {
		summaryDays = 7
	}
	return &Engine{
		store:       store,
		catalog:     catalog,
		categorizer: categorizer,
		deriver:     deriver,
		events:      events,
		summaryDays: summaryDays,
		now:         time.Now,
	}
}

// HandleText processes free-form input: the literal word "total" is served
// as the lifetime total report, anything else is captured as an expense.
func (e *Engine) HandleText(ctx context.Context, text string) Reply {
	if core.IsTotalRequest(text) {
		return e.totalReply(ctx)
	}

	draft, err := core.ParseLine(text, e.now())
	if err != nil {
		if errors.Is(err, core.ErrTooFewTokens) || errors.Is(err, core.ErrInvalidAmount) {
			return Reply{Text: usageHint(err)}
		}
		return softFailure(err)
	}

	// The recognised category set is exactly the catalog's key set; anything
	// the keyword table produces outside it collapses to the catch-all.
	category := e.categorizer.Categorize(draft.Notes)
	if !e.catalog.Contains(category) {
		category = core.CatchAll
	}
	t := core.Transaction{
		Date:     draft.Date,
		Amount:   draft.Amount,
		Category: category,
		Type:     e.deriver.DeriveType(category),
		Notes:    draft.Notes,
	}

	row, err := e.store.Append(ctx, t)
	if err != nil {
		return softFailure(err)
	}
	t.Row = row

	// Budget check: one extra full scan, synchronous in the write path.
	advisory := ""
	if records, err := e.store.ReadAll(ctx); err != nil {
		slog.ErrorContext(ctx, "Budget check read failed", "error", err, "row", row)
	} else if line, warn := report.Threshold(records, e.catalog, category); warn {
		advisory = formatAdvisory(line)
	}

	if e.events != nil {
		if err := e.events.TransactionAppended(ctx, row, t); err != nil {
			slog.ErrorContext(ctx, "Failed to publish append event", "error", err, "row", row)
		}
	}

	cells := t.Cells()
	return Reply{
		Text: formatConfirmation(t, advisory),
		Keyboard: [][]Button{{{
			Label: "Change category",
			Token: encodePrompt(row, fingerprint(cells[0], cells[1])),
		}}},
	}
}

// HandleCommand serves the slash-command surface. args is the raw text
// after the command name, trimmed.
func (e *Engine) HandleCommand(ctx context.Context, cmd, args string) Reply {
	switch cmd {
	case "start", "help":
		return Reply{Text: greeting()}
	case "summary":
		days := e.summaryDays
		if args != "" {
			n, err := strconv.Atoi(args)
			if err != nil || n < 1 {
				return Reply{Text: "❌ Usage: /summary [days]"}
			}
			days = n
		}
		return e.summaryReply(ctx, days)
	case "total":
		return e.totalReply(ctx)
	case "recent":
		return e.recentReply(ctx)
	case "delete":
		return e.deleteReply(ctx, args)
	case "budget":
		return e.budgetReply(ctx)
	case "categories":
		return e.detailReply(ctx)
	default:
		return Reply{Text: greeting()}
	}
}

// HandleCallback advances the correction protocol by one step. The token is
// the entire protocol state; a fingerprint mismatch means the row moved
// underneath the token and the correction is refused as stale.
func (e *Engine) HandleCallback(ctx context.Context, data string) Reply {
	tok, err := parseToken(data)
	if err != nil {
		return Reply{Text: "❌ This button is no longer valid."}
	}

	rec, reply, ok := e.resolveToken(ctx, tok)
	if !ok {
		return reply
	}

	switch tok.action {
	case actionPrompt:
		keyboard := make([][]Button, 0, (len(e.catalog)+1)/2)
		var row []Button
		for i, b := range e.catalog {
			row = append(row, Button{
				Label: b.Category,
				Token: encodeCommit(tok.row, i, tok.fp),
			})
			if len(row) == 2 {
				keyboard = append(keyboard, row)
				row = nil
			}
		}
		if len(row) > 0 {
			keyboard = append(keyboard, row)
		}
		return Reply{
			Text:     fmt.Sprintf("Pick a category for row %d (%s, %s):", tok.row, rec.Amount, rec.Notes),
			Keyboard: keyboard,
		}

	case actionCommit:
		if tok.catIndex >= len(e.catalog) {
			return Reply{Text: "❌ This button is no longer valid."}
		}
		category := e.catalog[tok.catIndex].Category
		typ := e.deriver.DeriveType(category)
		if err := e.store.UpdateCategory(ctx, tok.row, category, typ); err != nil {
			return softFailure(err)
		}
		if e.events != nil {
			if err := e.events.CategoryCorrected(ctx, tok.row, category, typ); err != nil {
				slog.ErrorContext(ctx, "Failed to publish correction event", "error", err, "row", tok.row)
			}
		}
		return Reply{Text: fmt.Sprintf("✅ Row %d moved to %s (%s).", tok.row, category, typ)}
	}
	return Reply{Text: "❌ This button is no longer valid."}
}

// resolveToken loads the addressed row and checks the token fingerprint
// against its current date and amount.
func (e *Engine) resolveToken(ctx context.Context, tok token) (core.Record, Reply, bool) {
	records, err := e.store.ReadAll(ctx)
	if err != nil {
		return core.Record{}, softFailure(err), false
	}
	for _, rec := range records {
		if rec.Row != tok.row {
			continue
		}
		if fingerprint(rec.Date, rec.Amount) != tok.fp {
			return core.Record{}, Reply{Text: "❌ The ledger changed since this button was sent. Use /recent and try again."}, false
		}
		return rec, Reply{}, true
	}
	return core.Record{}, Reply{Text: "❌ That row no longer exists."}, false
}

// SummaryText builds the windowed summary for scheduled pushes.
func (e *Engine) SummaryText(ctx context.Context, days int) (string, error) {
	records, err := e.store.ReadAll(ctx)
	if err != nil {
		return "", fmt.Errorf("read ledger: %w", err)
	}
	return formatSummary(report.Summarize(records, e.now(), days)), nil
}

func (e *Engine) totalReply(ctx context.Context) Reply {
	records, err := e.store.ReadAll(ctx)
	if err != nil {
		return softFailure(err)
	}
	return Reply{Text: formatTotal(report.Total(records))}
}

func (e *Engine) summaryReply(ctx context.Context, days int) Reply {
	records, err := e.store.ReadAll(ctx)
	if err != nil {
		return softFailure(err)
	}
	return Reply{Text: formatSummary(report.Summarize(records, e.now(), days))}
}

func (e *Engine) recentReply(ctx context.Context) Reply {
	records, err := e.store.ReadAll(ctx)
	if err != nil {
		return softFailure(err)
	}
	if len(records) > recentLimit {
		records = records[len(records)-recentLimit:]
	}
	return Reply{Text: formatRecent(records)}
}

func (e *Engine) deleteReply(ctx context.Context, args string) Reply {
	if args == "" {
		return Reply{Text: "❌ Usage: /delete <row>"}
	}
	row, err := strconv.Atoi(strings.Fields(args)[0])
	if err != nil {
		return Reply{Text: "❌ Usage: /delete <row>"}
	}
	if err := e.store.DeleteRow(ctx, row); err != nil {
		if errors.Is(err, ledger.ErrHeaderRow) {
			return Reply{Text: fmt.Sprintf("❌ Row %d cannot be deleted; data rows start at %d.", row, ledger.FirstDataRow)}
		}
		return softFailure(err)
	}
	if e.events != nil {
		if err := e.events.RowDeleted(ctx, row); err != nil {
			slog.ErrorContext(ctx, "Failed to publish delete event", "error", err, "row", row)
		}
	}
	return Reply{Text: fmt.Sprintf("🗑 Row %d deleted. Later rows shifted up by one.", row)}
}

func (e *Engine) budgetReply(ctx context.Context) Reply {
	records, err := e.store.ReadAll(ctx)
	if err != nil {
		return softFailure(err)
	}
	return Reply{Text: formatBudget(report.Budget(records, e.catalog))}
}

func (e *Engine) detailReply(ctx context.Context) Reply {
	records, err := e.store.ReadAll(ctx)
	if err != nil {
		return softFailure(err)
	}
	return Reply{Text: formatDetail(report.Detail(records, e.catalog))}
}

func softFailure(err error) Reply {
	return Reply{Text: fmt.Sprintf("❌ Error: %v", err)}
}

func usageHint(err error) string {
	return fmt.Sprintf("❌ %v\nFormat: [dd-Mon-yyyy] amount notes\nExample: 15-Aug-2025 450 groceries milk", err)
}
