package http

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/invoice-tracker/internal/application/ledger"
)

func TestNewMessages_IdiomaNoSoportado(t *testing.T) {
	_, err := NewMessages("de")
	assert.Error(t, err)
}

func TestMessages_TodosLosTiposEnTodosLosIdiomas(t *testing.T) {
	msgs, err := NewMessages("fa")
	require.NoError(t, err)

	kinds := []ledger.OutcomeKind{
		ledger.KindRegistered, ledger.KindAlreadyKnown, ledger.KindExited, ledger.KindDeleted,
		ledger.KindFound, ledger.KindInvalidNumber, ledger.KindNotFound, ledger.KindCannotDelete,
		ledger.KindUnknownStatus,
	}
	snap := &ledger.Snapshot{Date: "1405/07/27", Time: "09:30:00", Status: "entered"}
	for _, tag := range []language.Tag{language.Persian, language.Spanish, language.English} {
		for _, k := range kinds {
			got := msgs.Outcome(tag, ledger.Outcome{Kind: k, Number: "77", Snapshot: snap})
			assert.NotContains(t, got, "%!", "%s/%s: %q", tag, k, got)
			assert.NotContains(t, got, "outcome.", "%s/%s sin traducción", tag, k)
			if k != ledger.KindInvalidNumber {
				assert.Contains(t, got, "77", "%s/%s", tag, k)
			}
		}
	}
}

func TestMessages_EstadoDesconocidoSeMuestraCrudo(t *testing.T) {
	msgs, err := NewMessages("es")
	require.NoError(t, err)

	assert.Equal(t, "salida", msgs.Status(language.Spanish, "exited"))
	assert.Equal(t, "pending", msgs.Status(language.Spanish, "pending"))
}

func TestResolve(t *testing.T) {
	msgs, err := NewMessages("es")
	require.NoError(t, err)

	assert.Equal(t, language.Spanish, msgs.Resolve("", ""))
	assert.Equal(t, language.Persian, msgs.Resolve("fa", ""))
	assert.Equal(t, language.English, msgs.Resolve("", "en-US,en;q=0.8"))
	assert.Equal(t, language.Persian, msgs.Resolve("", "fa-IR"))
	assert.Equal(t, language.Spanish, msgs.Resolve("xx-invalid-", "zh"))
}

func TestStatusFor(t *testing.T) {
	cases := map[ledger.OutcomeKind]int{
		ledger.KindRegistered:    fiber.StatusCreated,
		ledger.KindAlreadyKnown:  fiber.StatusOK,
		ledger.KindExited:        fiber.StatusOK,
		ledger.KindDeleted:       fiber.StatusOK,
		ledger.KindFound:         fiber.StatusOK,
		ledger.KindInvalidNumber: fiber.StatusBadRequest,
		ledger.KindNotFound:      fiber.StatusNotFound,
		ledger.KindCannotDelete:  fiber.StatusConflict,
		ledger.KindUnknownStatus: fiber.StatusConflict,
	}
	for kind, want := range cases {
		assert.Equal(t, want, statusFor(kind), string(kind))
	}
}
