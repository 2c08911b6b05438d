package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/example/shift-calendar/internal/account"
)

var errMissingUsername = errors.New("no username resolved from request path")

// accountDirectory is the read side of the account registry.
type accountDirectory interface {
	FindByUsername(name string) (account.Account, bool)
}

// calendarBuilder synthesizes one calendar document for an account snapshot.
type calendarBuilder interface {
	Build(ctx context.Context, acc account.Account) (string, error)
}

// CalendarHandler serves GET /{username} as a downloadable iCalendar feed.
type CalendarHandler struct {
	accounts  accountDirectory
	calendars calendarBuilder
	responder responder
	logger    *slog.Logger
}

func NewCalendarHandler(accounts accountDirectory, calendars calendarBuilder, logger *slog.Logger) *CalendarHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CalendarHandler{accounts: accounts, calendars: calendars, responder: newResponder(logger), logger: logger}
}

// log prefers the request-scoped logger so records carry the request id the
// middleware minted. There is a single route, so the username is the only
// handler attribute worth tagging.
func (h *CalendarHandler) log(ctx context.Context, username string) *slog.Logger {
	logger := LoggerFromContext(ctx)
	if logger == nil {
		logger = h.logger
	}
	return logger.With("username", username)
}

// Get looks up the account, synthesizes its calendar, and writes it as an
// attachment. The URL path is the only trust boundary: a known username is
// served, anything else is a 404.
func (h *CalendarHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.accounts == nil || h.calendars == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	username, ok := UsernameFromContext(r.Context())
	if !ok || username == "" {
		h.responder.writeError(r.Context(), w, http.StatusNotFound, "Account not found", errMissingUsername)
		return
	}
	logger := h.log(r.Context(), username)

	snapshot, ok := h.accounts.FindByUsername(username)
	if !ok {
		logger.WarnContext(r.Context(), "no account for username")
		http.Error(w, "Account not found", http.StatusNotFound)
		return
	}

	document, err := h.calendars.Build(r.Context(), snapshot)
	if err != nil {
		// Synthesis only fails on corrupt upstream data; a sparse calendar is
		// not an error.
		h.responder.writeError(r.Context(), w, http.StatusInternalServerError, "Failed to build calendar", err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	if _, err := w.Write([]byte(document)); err != nil {
		logger.ErrorContext(r.Context(), "failed to write calendar response", "error", err)
		return
	}

	logger.InfoContext(r.Context(), "calendar generated")
}
