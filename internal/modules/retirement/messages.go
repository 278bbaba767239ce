package retirement

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
)

// SupportedLanguages lists the languages recommendations are translated into.
// The first entry is the fallback.
var SupportedLanguages = []language.Tag{language.English, language.Spanish}

var languageMatcher = language.NewMatcher(SupportedLanguages)

// MatchLanguage picks the closest supported language for a BCP 47 tag or
// Accept-Language style string. Empty or unparseable input yields English.
func MatchLanguage(preference string) language.Tag {
	if preference == "" {
		return language.English
	}
	tags, _, err := language.ParseAcceptLanguage(preference)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, index, _ := languageMatcher.Match(tags...)
	return SupportedLanguages[index]
}

// Message keys double as the English text.
const (
	msgOnTrack = "Congratulations! You're on track for retirement. Your current wealth of $%s " +
		"is projected to grow to $%s, meeting your retirement goal."
	msgContinueStrategy = "Continue your current savings strategy and consider diversifying your portfolio."
	msgShortfall        = "Analysis shows you need $%s more to reach your retirement goal. " +
		"This requires saving %s%% of your income annually."
	msgSavingsVeryHigh = "The required savings rate is very high. Consider: " +
		"1) Extending your retirement age, " +
		"2) Reducing post-retirement expenses, or " +
		"3) Exploring higher-return investment options (with appropriate risk management)."
	msgSavingsAggressive = "This is an aggressive but achievable savings target. " +
		"Focus on maximizing your income during peak earning years and minimize unnecessary expenses."
	msgSavingsHealthy   = "This is a healthy savings rate. Automate your savings to stay on track."
	msgTimelineImminent = "With less than 5 years to retirement, consider working with a financial advisor " +
		"to optimize your strategy and reduce risk in your portfolio."
	msgTimelineNear = "You have less than a decade to retirement. Start shifting to a more conservative " +
		"investment allocation to protect your gains."
	msgTimelineLong = "You have %d years until retirement - time is on your side! " +
		"Consider growth-oriented investments to maximize returns."
	msgAthleteTip = "Athlete-specific tip: Consider your career earnings trajectory. " +
		"If you're in your peak earning years, maximize savings now. " +
		"Also, think about post-career income opportunities (coaching, endorsements, business ventures)."
	msgInflation = "Remember: Inflation will increase your costs over time. " +
		"Your $%s/month today will need to be higher in retirement to maintain the same lifestyle."
)

var spanish = map[string]string{
	msgOnTrack: "¡Felicidades! Vas bien encaminado hacia tu retiro. Tu patrimonio actual de $%s " +
		"crecerá hasta $%s, cumpliendo tu meta de retiro.",
	msgContinueStrategy: "Mantén tu estrategia de ahorro actual y considera diversificar tu portafolio.",
	msgShortfall: "El análisis muestra que necesitas $%s adicionales para alcanzar tu meta de retiro. " +
		"Esto requiere ahorrar el %s%% de tus ingresos cada año.",
	msgSavingsVeryHigh: "La tasa de ahorro requerida es muy alta. Considera: " +
		"1) Retrasar tu edad de retiro, " +
		"2) Reducir tus gastos posteriores al retiro, o " +
		"3) Explorar inversiones de mayor rendimiento (con una gestión de riesgo adecuada).",
	msgSavingsAggressive: "Es una meta de ahorro exigente pero alcanzable. " +
		"Maximiza tus ingresos en tus mejores años y reduce los gastos innecesarios.",
	msgSavingsHealthy: "Es una tasa de ahorro saludable. Automatiza tus aportaciones para no desviarte.",
	msgTimelineImminent: "Con menos de 5 años para tu retiro, considera trabajar con un asesor financiero " +
		"para optimizar tu estrategia y reducir el riesgo de tu portafolio.",
	msgTimelineNear: "Te queda menos de una década para el retiro. Empieza a mover tu cartera " +
		"hacia una asignación más conservadora para proteger tus ganancias.",
	msgTimelineLong: "Te quedan %d años para el retiro: ¡el tiempo está de tu lado! " +
		"Considera inversiones orientadas al crecimiento para maximizar tus rendimientos.",
	msgAthleteTip: "Consejo para deportistas: considera la trayectoria de tus ingresos profesionales. " +
		"Si estás en tus años de mayores ingresos, ahorra al máximo ahora. " +
		"Piensa también en ingresos después de tu carrera (entrenamiento, patrocinios, negocios).",
	msgInflation: "Recuerda: la inflación aumentará tus costos con el tiempo. " +
		"Tus $%s/mes de hoy deberán ser más en el retiro para mantener el mismo estilo de vida.",
}

var messages = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, translation := range spanish {
		mustSet(b, language.English, key, key)
		mustSet(b, language.Spanish, key, translation)
	}
	return b
}

func mustSet(b *catalog.Builder, tag language.Tag, key, msg string) {
	if err := b.SetString(tag, key, msg); err != nil {
		panic(fmt.Sprintf("retirement: invalid message %q for %s: %v", key, tag, err))
	}
}

// printer formats recommendation text and figures for one language.
type printer struct {
	p *message.Printer
}

func newPrinter(tag language.Tag) printer {
	return printer{p: message.NewPrinter(tag, message.Catalog(messages))}
}

func (p printer) text(key string, args ...interface{}) string {
	return p.p.Sprintf(key, args...)
}

// amount renders a currency figure with grouping and no decimals.
func (p printer) amount(v float64) string {
	return p.p.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
}

// percent renders a percentage value with one decimal.
func (p printer) percent(v float64) string {
	return p.p.Sprint(number.Decimal(v, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
}
