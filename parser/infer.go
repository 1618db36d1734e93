package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Rule pulls implicit flag values out of the subject text. Rules only set
// flags that are not already present.
type Rule func(subject string, flags map[string]any)

// Rules maps an "entity.verb" key to its inference rule.
type Rules map[string]Rule

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	currencyPattern = regexp.MustCompile(`^[A-Za-z]{3}$`)
	moneyPattern    = regexp.MustCompile(`^[$€£]?\d[\d,]*(\.\d+)?$`)
	codePattern     = regexp.MustCompile(`^\d+$`)
)

// knownCurrencies lets lowercase codes like "usd" count as currencies while
// ordinary three-letter words such as "Inc" do not.
var knownCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true, "CAD": true, "AUD": true,
	"CHF": true, "CNY": true, "INR": true, "NZD": true, "SEK": true, "NOK": true,
	"DKK": true, "SGD": true, "HKD": true, "MXN": true, "BRL": true, "ZAR": true,
}

var (
	roleWords    = []string{"owner", "admin", "accountant", "viewer"}
	methodWords  = []string{"bank", "card", "cash", "check"}
	accountTypes = []string{"asset", "liability", "equity", "revenue", "expense"}
)

// DefaultRules returns the inference table for the business grammar.
func DefaultRules() Rules {
	return Rules{
		"company.create":  inferNameCurrency("name"),
		"company.switch":  inferSlug,
		"customer.create": inferCustomer,
		"customer.show":   inferWhole("name"),
		"user.invite":     inferInvite,
		"user.remove":     inferEmailOnly,
		"role.create":     inferWhole("name"),
		"role.assign":     inferRoleAssign,
		"invoice.create":  inferInvoice,
		"invoice.show":    inferFirst("id"),
		"invoice.send":    inferInvoiceSend,
		"invoice.void":    inferInvoiceVoid,
		"payment.create":  inferPayment,
		"account.create":  inferAccount,
		"journal.create":  inferJournal,
		"journal.show":    inferFirst("id"),
	}
}

// IsEmail reports whether s is shaped like an email address.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsCurrency reports whether s reads as a currency code: three letters that
// are either all uppercase or a known ISO code.
func IsCurrency(s string) bool {
	if !currencyPattern.MatchString(s) {
		return false
	}
	return s == strings.ToUpper(s) || knownCurrencies[strings.ToUpper(s)]
}

// ParseMoney parses "1200", "$1,200.50" and similar tokens.
func ParseMoney(s string) (float64, bool) {
	if !moneyPattern.MatchString(s) {
		return 0, false
	}
	clean := strings.TrimLeft(s, "$€£")
	clean = strings.ReplaceAll(clean, ",", "")
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func setIfAbsent(flags map[string]any, name string, value any) {
	if _, ok := flags[name]; ok {
		return
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return
	}
	flags[name] = value
}

// takeCurrency removes the last currency-shaped word and returns it
// uppercased.
func takeCurrency(words []string) (string, []string) {
	for i := len(words) - 1; i >= 0; i-- {
		if IsCurrency(words[i]) {
			return strings.ToUpper(words[i]), without(words, i)
		}
	}
	return "", words
}

func takeEmail(words []string) (string, []string) {
	for i, w := range words {
		if IsEmail(w) {
			return w, without(words, i)
		}
	}
	return "", words
}

func takeWord(words []string, allowed []string) (string, []string) {
	for i, w := range words {
		for _, a := range allowed {
			if strings.EqualFold(w, a) {
				return a, without(words, i)
			}
		}
	}
	return "", words
}

func without(words []string, i int) []string {
	out := make([]string, 0, len(words)-1)
	out = append(out, words[:i]...)
	return append(out, words[i+1:]...)
}

func joined(words []string) string {
	return strings.TrimSpace(strings.Join(words, " "))
}

func inferNameCurrency(nameFlag string) Rule {
	return func(subject string, flags map[string]any) {
		currency, rest := takeCurrency(strings.Fields(subject))
		setIfAbsent(flags, "currency", currency)
		setIfAbsent(flags, nameFlag, joined(rest))
	}
}

func inferWhole(flag string) Rule {
	return func(subject string, flags map[string]any) {
		setIfAbsent(flags, flag, strings.TrimSpace(subject))
	}
}

func inferFirst(flag string) Rule {
	return func(subject string, flags map[string]any) {
		words := strings.Fields(subject)
		if len(words) > 0 {
			setIfAbsent(flags, flag, words[0])
		}
	}
}

func inferSlug(subject string, flags map[string]any) {
	setIfAbsent(flags, "slug", strings.ToLower(strings.Join(strings.Fields(subject), "-")))
}

func inferCustomer(subject string, flags map[string]any) {
	words := strings.Fields(subject)
	email, words := takeEmail(words)
	currency, words := takeCurrency(words)
	setIfAbsent(flags, "email", email)
	setIfAbsent(flags, "currency", currency)
	setIfAbsent(flags, "name", joined(words))
}

func inferInvite(subject string, flags map[string]any) {
	words := strings.Fields(subject)
	email, words := takeEmail(words)
	role, _ := takeWord(words, roleWords)
	setIfAbsent(flags, "email", email)
	setIfAbsent(flags, "role", role)
}

func inferEmailOnly(subject string, flags map[string]any) {
	email, _ := takeEmail(strings.Fields(subject))
	setIfAbsent(flags, "email", email)
}

func inferRoleAssign(subject string, flags map[string]any) {
	email, words := takeEmail(strings.Fields(subject))
	setIfAbsent(flags, "email", email)
	setIfAbsent(flags, "role", joined(words))
}

func inferInvoice(subject string, flags map[string]any) {
	words := strings.Fields(subject)
	var rest []string
	amountSet := false
	for _, w := range words {
		if !amountSet {
			if amount, ok := ParseMoney(w); ok {
				setIfAbsent(flags, "amount", amount)
				amountSet = true
				continue
			}
		}
		rest = append(rest, w)
	}
	currency, rest := takeCurrency(rest)
	setIfAbsent(flags, "currency", currency)
	setIfAbsent(flags, "customer", joined(rest))
}

func inferInvoiceSend(subject string, flags map[string]any) {
	words := strings.Fields(subject)
	email, words := takeEmail(words)
	setIfAbsent(flags, "to", email)
	if len(words) > 0 {
		setIfAbsent(flags, "id", words[0])
	}
}

func inferInvoiceVoid(subject string, flags map[string]any) {
	words := strings.Fields(subject)
	if len(words) == 0 {
		return
	}
	setIfAbsent(flags, "id", words[0])
	setIfAbsent(flags, "reason", joined(words[1:]))
}

// inferPayment takes the last money-shaped word as the amount and the first
// remaining word as the invoice number.
func inferPayment(subject string, flags map[string]any) {
	words := strings.Fields(subject)
	method, words := takeWord(words, methodWords)
	setIfAbsent(flags, "method", method)

	for i := len(words) - 1; i >= 0; i-- {
		if amount, ok := ParseMoney(words[i]); ok {
			setIfAbsent(flags, "amount", amount)
			words = without(words, i)
			break
		}
	}
	if len(words) > 0 {
		setIfAbsent(flags, "invoice", words[0])
	}
}

func inferAccount(subject string, flags map[string]any) {
	words := strings.Fields(subject)
	kind, words := takeWord(words, accountTypes)
	setIfAbsent(flags, "type", kind)
	for i, w := range words {
		if codePattern.MatchString(w) {
			setIfAbsent(flags, "code", w)
			words = without(words, i)
			break
		}
	}
	setIfAbsent(flags, "name", joined(words))
}

// inferJournal reads "<debit> <credit> <amount> memo…": the last numeric
// word is the amount and earlier numeric words fill debit then credit.
func inferJournal(subject string, flags map[string]any) {
	words := strings.Fields(subject)
	var numeric []string
	var memo []string
	for _, w := range words {
		if _, ok := ParseMoney(w); ok {
			numeric = append(numeric, w)
			continue
		}
		memo = append(memo, w)
	}
	if len(numeric) > 0 {
		amount, _ := ParseMoney(numeric[len(numeric)-1])
		setIfAbsent(flags, "amount", amount)
		numeric = numeric[:len(numeric)-1]
	}
	if len(numeric) > 0 {
		setIfAbsent(flags, "debit", numeric[0])
	}
	if len(numeric) > 1 {
		setIfAbsent(flags, "credit", numeric[1])
	}
	setIfAbsent(flags, "memo", joined(memo))
}
