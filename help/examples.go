package help

// DefaultExamples are domain-specific example invocations keyed by
// entity.verb. Canonical examples are generated from the grammar.
func DefaultExamples() map[string][]string {
	return map[string][]string{
		"company.create":  {"company create Acme Inc USD", "co new \"Globex Ltd\" GBP --industry=retail"},
		"company.switch":  {"company switch acme-inc", "co use Acme Inc"},
		"company.list":    {"co ls --all"},
		"user.invite":     {"user invite jane@acme.com --role=accountant", "ui bob@acme.com"},
		"user.remove":     {"user rm jane@acme.com"},
		"role.assign":     {"role assign jane@acme.com admin"},
		"customer.create": {"customer create Acme Corp billing@acme.com EUR", "cc Initech"},
		"customer.list":   {"cust ls -q acme"},
		"invoice.create":  {"invoice create Acme 1200 USD --due=2025-01-01", "ic Acme 99.50 -m \"March retainer\""},
		"invoice.list":    {"il --status=overdue", "inv ls -s draft"},
		"invoice.send":    {"invoice send INV-1042 --to=ap@acme.com"},
		"invoice.void":    {"invoice void INV-1042 duplicate entry"},
		"payment.create":  {"payment record INV-1042 1200 bank", "pr INV-7 $45.00 card"},
		"account.create":  {"account create 4000 Sales revenue", "coa new 1010 Petty cash asset"},
		"journal.create":  {"journal create 6100 1010 1500 March rent", "je post 6100 1010 250.00"},
	}
}
