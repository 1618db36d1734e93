package runner

// sample tables returned by list verbs in preview mode, keyed by entity.
var samples = map[string]Result{
	"company": {
		Headers: []string{"Slug", "Name", "Currency"},
		Rows: [][]string{
			{"acme-inc", "Acme Inc", "USD"},
			{"globex", "Globex Ltd", "GBP"},
			{"initech", "Initech", "EUR"},
		},
	},
	"user": {
		Headers: []string{"Email", "Name", "Role"},
		Rows: [][]string{
			{"jane@acme.com", "Jane Park", "owner"},
			{"bob@acme.com", "Bob Ruiz", "accountant"},
			{"li@acme.com", "Li Wei", "viewer"},
		},
	},
	"role": {
		Headers: []string{"Role", "Members"},
		Rows: [][]string{
			{"owner", "1"},
			{"admin", "0"},
			{"accountant", "1"},
			{"viewer", "1"},
		},
	},
	"customer": {
		Headers: []string{"Name", "Email", "Currency"},
		Rows: [][]string{
			{"Acme Corp", "billing@acme.com", "USD"},
			{"Umbrella", "ap@umbrella.test", "EUR"},
		},
	},
	"invoice": {
		Headers: []string{"ID", "Customer", "Amount", "Currency", "Status"},
		Rows: [][]string{
			{"INV-1040", "Acme Corp", "1200.00", "USD", "paid"},
			{"INV-1041", "Umbrella", "480.00", "EUR", "sent"},
			{"INV-1042", "Acme Corp", "99.50", "USD", "draft"},
			{"INV-1043", "Umbrella", "3100.00", "EUR", "overdue"},
		},
	},
	"payment": {
		Headers: []string{"ID", "Invoice", "Amount", "Method"},
		Rows: [][]string{
			{"PAY-301", "INV-1040", "1200.00", "bank"},
		},
	},
	"account": {
		Headers: []string{"Code", "Name", "Type"},
		Rows: [][]string{
			{"1010", "Cash", "asset"},
			{"1200", "Receivables", "asset"},
			{"4000", "Sales", "revenue"},
			{"6100", "Rent", "expense"},
		},
	},
	"journal": {
		Headers: []string{"ID", "Date", "Debit", "Credit", "Amount", "Memo"},
		Rows: [][]string{
			{"JE-88", "2025-03-01", "6100", "1010", "1500.00", "March rent"},
		},
	},
}
