package http

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/jhoicas/invoice-tracker/internal/application/ledger"
	"github.com/jhoicas/invoice-tracker/internal/domain/entity"
)

// Idiomas soportados para los mensajes al operador.
var supportedLocales = map[string]language.Tag{
	"fa": language.Persian,
	"es": language.Spanish,
	"en": language.English,
}

type entry struct {
	key        string
	fa, es, en string
}

// Claves outcome.<KIND> y status.<estado>. Los que muestran snapshot reciben
// (número, fecha, hora, estado); INVALID_NUMBER no recibe argumentos; el resto sólo el número.
var entries = []entry{
	{"outcome.REGISTERED", "فاکتور %[1]s ثبت شد ✅", "Factura %[1]s registrada ✅", "Invoice %[1]s registered ✅"},
	{"outcome.EXITED", "فاکتور %[1]s خارج شد ✅", "Factura %[1]s con salida registrada ✅", "Invoice %[1]s exited ✅"},
	{"outcome.DELETED", "فاکتور %[1]s حذف شد ✅", "Factura %[1]s eliminada ✅", "Invoice %[1]s deleted ✅"},
	{"outcome.ALREADY_KNOWN", "فاکتور %[1]s (%[2]s - %[3]s) %[4]s", "Factura %[1]s (%[2]s - %[3]s) %[4]s", "Invoice %[1]s (%[2]s - %[3]s) %[4]s"},
	{"outcome.FOUND", "فاکتور %[1]s (%[2]s - %[3]s) %[4]s", "Factura %[1]s (%[2]s - %[3]s) %[4]s", "Invoice %[1]s (%[2]s - %[3]s) %[4]s"},
	{"outcome.INVALID_NUMBER", "شماره فاکتور نامعتبر است ❌", "Número de factura inválido ❌", "Invalid invoice number ❌"},
	{"outcome.NOT_FOUND", "فاکتور %[1]s یافت نشد ❌", "Factura %[1]s no encontrada ❌", "Invoice %[1]s not found ❌"},
	{"outcome.CANNOT_DELETE", "فاکتور %[1]s قبلاً خارج شده و قابل حذف نیست ❌", "La factura %[1]s ya salió y no se puede eliminar ❌", "Invoice %[1]s already exited and cannot be deleted ❌"},
	{"outcome.UNKNOWN_STATUS", "وضعیت نامشخص برای فاکتور %[1]s ❌", "Estado desconocido para la factura %[1]s ❌", "Unknown status for invoice %[1]s ❌"},
	{"status." + entity.StatusEntered, "وارد شده", "ingresada", "entered"},
	{"status." + entity.StatusExited, "خارج شده", "salida", "exited"},
}

// Messages renderiza resultados del ledger en el idioma pedido.
type Messages struct {
	cat       *catalog.Builder
	matcher   language.Matcher
	supported []language.Tag
}

// NewMessages construye el catálogo; defaultLocale (fa, es, en) es el idioma de respaldo.
func NewMessages(defaultLocale string) (*Messages, error) {
	def, ok := supportedLocales[defaultLocale]
	if !ok {
		return nil, fmt.Errorf("idioma no soportado: %q", defaultLocale)
	}
	cat := catalog.NewBuilder(catalog.Fallback(def))
	for _, e := range entries {
		for tag, msg := range map[language.Tag]string{language.Persian: e.fa, language.Spanish: e.es, language.English: e.en} {
			if err := cat.SetString(tag, e.key, msg); err != nil {
				return nil, fmt.Errorf("catálogo %s/%s: %w", tag, e.key, err)
			}
		}
	}
	supported := []language.Tag{def}
	for _, tag := range []language.Tag{language.Persian, language.Spanish, language.English} {
		if tag != def {
			supported = append(supported, tag)
		}
	}
	return &Messages{cat: cat, matcher: language.NewMatcher(supported), supported: supported}, nil
}

// Default idioma de respaldo.
func (m *Messages) Default() language.Tag { return m.supported[0] }

// Resolve elige el idioma: ?lang= tiene prioridad sobre Accept-Language.
func (m *Messages) Resolve(lang, acceptLanguage string) language.Tag {
	var prefs []language.Tag
	if lang != "" {
		if tag, err := language.Parse(lang); err == nil {
			prefs = append(prefs, tag)
		}
	}
	if len(prefs) == 0 && acceptLanguage != "" {
		prefs, _, _ = language.ParseAcceptLanguage(acceptLanguage)
	}
	if len(prefs) == 0 {
		return m.Default()
	}
	_, idx, conf := m.matcher.Match(prefs...)
	if conf == language.No {
		return m.Default()
	}
	return m.supported[idx]
}

// Outcome texto del resultado para el operador.
func (m *Messages) Outcome(tag language.Tag, out ledger.Outcome) string {
	p := message.NewPrinter(tag, message.Catalog(m.cat))
	key := "outcome." + string(out.Kind)
	switch out.Kind {
	case ledger.KindInvalidNumber:
		return p.Sprintf(key)
	case ledger.KindAlreadyKnown, ledger.KindFound:
		var snap ledger.Snapshot
		if out.Snapshot != nil {
			snap = *out.Snapshot
		}
		return p.Sprintf(key, out.Number, snap.Date, snap.Time, m.status(p, snap.Status))
	default:
		return p.Sprintf(key, out.Number)
	}
}

// Status nombre localizado de un estado del ciclo de vida.
func (m *Messages) Status(tag language.Tag, status string) string {
	return m.status(message.NewPrinter(tag, message.Catalog(m.cat)), status)
}

func (m *Messages) status(p *message.Printer, status string) string {
	switch status {
	case entity.StatusEntered, entity.StatusExited:
		return p.Sprintf("status." + status)
	default:
		return status
	}
}
