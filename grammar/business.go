package grammar

var currencyFlag = Flag{
	Name:          "currency",
	Short:         "c",
	Type:          TypeCurrency,
	DefaultSource: "company currency",
	Description:   "ISO 4217 currency code",
}

var roleValues = []string{"owner", "admin", "accountant", "viewer"}

// Business returns the built-in grammar for the bookkeeping entities, in
// registration order.
func Business() []Entity {
	return []Entity{
		{
			Name:        "company",
			Shortcuts:   []string{"co", "comp", "org"},
			DefaultVerb: "list",
			Description: "Companies you belong to",
			Icon:        "🏢",
			Verbs: []Verb{
				{
					Name:            "create",
					Aliases:         []string{"new", "add"},
					Description:     "Create a company",
					RequiresSubject: true,
					Flags: []Flag{
						{Name: "name", Short: "n", Type: TypeString, Required: true, Description: "Legal or trading name"},
						{Name: "currency", Short: "c", Type: TypeCurrency, Required: true, Description: "Base currency"},
						{Name: "industry", Type: TypeString, Description: "Industry label"},
					},
				},
				{
					Name:        "list",
					ReadOnly:    true,
					Aliases:     []string{"ls"},
					Description: "List companies",
					Flags: []Flag{
						{Name: "all", Short: "a", Type: TypeBoolean, Description: "Include archived companies"},
					},
				},
				{
					Name:            "switch",
					ReadOnly:        true,
					Aliases:         []string{"use", "sw"},
					Description:     "Switch the active company",
					RequiresSubject: true,
					Flags: []Flag{
						{Name: "slug", Short: "s", Type: TypeString, Required: true, Description: "Company slug"},
					},
				},
				{
					Name:        "current",
					ReadOnly:    true,
					Aliases:     []string{"whoami"},
					Description: "Show the active company",
				},
			},
		},
		{
			Name:        "user",
			Shortcuts:   []string{"u", "usr", "member"},
			DefaultVerb: "list",
			Description: "Members of the active company",
			Icon:        "👤",
			Verbs: []Verb{
				{
					Name:            "invite",
					Aliases:         []string{"add"},
					Description:     "Invite a user by email",
					RequiresSubject: true,
					Flags: []Flag{
						{Name: "email", Short: "e", Type: TypeString, Required: true, Description: "Email address"},
						{Name: "role", Short: "r", Type: TypeEnum, Values: roleValues, DefaultSource: "viewer", Description: "Initial role"},
					},
				},
				{
					Name:        "list",
					ReadOnly:    true,
					Aliases:     []string{"ls"},
					Description: "List users",
					Flags: []Flag{
						{Name: "role", Short: "r", Type: TypeEnum, Values: roleValues, Description: "Filter by role"},
					},
				},
				{
					Name:            "remove",
					Aliases:         []string{"rm", "delete"},
					Description:     "Remove a user",
					RequiresSubject: true,
					Flags: []Flag{
						{Name: "email", Short: "e", Type: TypeString, Required: true, Description: "Email address"},
					},
				},
			},
		},
		{
			Name:        "role",
			Shortcuts:   []string{"r", "roles"},
			DefaultVerb: "list",
			Description: "Roles and permissions",
			Icon:        "🔑",
			Verbs: []Verb{
				{
					Name:        "list",
					ReadOnly:    true,
					Aliases:     []string{"ls"},
					Description: "List roles",
				},
				{
					Name:            "create",
					Aliases:         []string{"new"},
					Description:     "Create a custom role",
					RequiresSubject: true,
					Flags: []Flag{
						{Name: "name", Short: "n", Type: TypeString, Required: true, Description: "Role name"},
						{Name: "permissions", Short: "p", Type: TypeString, Description: "Comma-separated permissions"},
					},
				},
				{
					Name:            "assign",
					Aliases:         []string{"grant"},
					Description:     "Assign a role to a user",
					RequiresSubject: true,
					Flags: []Flag{
						{Name: "email", Short: "e", Type: TypeString, Required: true, Description: "User email"},
						{Name: "role", Short: "r", Type: TypeString, Required: true, Description: "Role name"},
					},
				},
			},
		},
		{
			Name:        "customer",
			Shortcuts:   []string{"cust", "cu", "client"},
			DefaultVerb: "list",
			Description: "Customers you invoice",
			Icon:        "🤝",
			Verbs: []Verb{
				{
					Name:            "create",
					Aliases:         []string{"new", "add"},
					Description:     "Create a customer",
					RequiresSubject: true,
					Flags: []Flag{
						{Name: "name", Short: "n", Type: TypeString, Required: true, Description: "Customer name"},
						{Name: "email", Short: "e", Type: TypeString, Description: "Billing email"},
						currencyFlag,
					},
				},
				{
					Name:        "list",
					ReadOnly:    true,
					Aliases:     []string{"ls"},
					Description: "List customers",
					Flags: []Flag{
						{Name: "search", Short: "q", Type: TypeString, Description: "Name filter"},
					},
				},
				{
					Name:            "show",
					ReadOnly:        true,
					Aliases:         []string{"view", "get"},
					Description:     "Show a customer",
					RequiresSubject: true,
					Flags: []Flag{
						{Name: "name", Short: "n", Type: TypeString, Required: true, Description: "Customer name"},
					},
				},
			},
		},
		{
			Name:        "invoice",
			Shortcuts:   []string{"inv", "in", "bill"},
			DefaultVerb: "list",
			Description: "Sales invoices",
			Icon:        "🧾",
			Verbs: []Verb{
				{
					Name:            "create",
					Aliases:         []string{"new", "add"},
					Description:     "Create an invoice",
					RequiresSubject: true,
					Flags: []Flag{
						{Name: "customer", Short: "C", Type: TypeString, Required: true, Description: "Customer name"},
						{Name: "amount", Short: "a", Type: TypeNumber, Required: true, Description: "Total amount"},
						{Name: "currency", Short: "c", Type: TypeCurrency, DefaultSource: "customer currency", Description: "Invoice currency"},
						{Name: "due", Short: "d", Type: TypeDate, DefaultSource: "net 30", Description: "Due date (YYYY-MM-DD)"},
						{Name: "memo", Short: "m", Type: TypeString, Description: "Line description"},
					},
				},
				{
					Name:        "list",
					ReadOnly:    true,
					Aliases:     []string{"ls"},
					Description: "List invoices",
					Flags: []Flag{
						{Name: "status", Short: "s", Type: TypeEnum, Values: []string{"draft", "sent", "paid", "overdue", "void"}, Description: "Filter by status"},
						{Name: "customer", Short: "C", Type: TypeString, Description: "Filter by customer"},
					},
				},
				{
					Name:            "show",
					ReadOnly:        true,
					Aliases:         []string{"view", "get"},
					Description:     "Show an invoice",
					RequiresSubject: true,
					Flags: []Flag{
						{Name: "id", Type: TypeString, Required: true, Description: "Invoice number"},
					},
				},
				{
					Name:            "send",
					Aliases:         []string{"email"},
					Description:     "Email an invoice to the customer",
					RequiresSubject: true,
					Flags: []Flag{
						{Name: "id", Type: TypeString, Required: true, Description: "Invoice number"},
						{Name: "to", Short: "t", Type: TypeString, DefaultSource: "customer email", Description: "Recipient override"},
					},
				},
				{
					Name:            "void",
					Aliases:         []string{"cancel"},
					Description:     "Void an invoice",
					RequiresSubject: true,
					Flags: []Flag{
						{Name: "id", Type: TypeString, Required: true, Description: "Invoice number"},
						{Name: "reason", Short: "r", Type: TypeString, Description: "Reason for voiding"},
					},
				},
			},
		},
		{
			Name:        "payment",
			Shortcuts:   []string{"pay", "pmt"},
			DefaultVerb: "list",
			Description: "Payments received against invoices",
			Icon:        "💳",
			Verbs: []Verb{
				{
					Name:            "create",
					Aliases:         []string{"record", "new", "add"},
					Description:     "Record a payment",
					RequiresSubject: true,
					Flags: []Flag{
						{Name: "invoice", Short: "i", Type: TypeString, Required: true, Description: "Invoice number"},
						{Name: "amount", Short: "a", Type: TypeNumber, Required: true, Description: "Amount received"},
						{Name: "method", Short: "m", Type: TypeEnum, Values: []string{"bank", "card", "cash", "check"}, DefaultSource: "bank", Description: "Payment method"},
						{Name: "date", Short: "d", Type: TypeDate, DefaultSource: "today", Description: "Date received"},
					},
				},
				{
					Name:        "list",
					ReadOnly:    true,
					Aliases:     []string{"ls"},
					Description: "List payments",
					Flags: []Flag{
						{Name: "invoice", Short: "i", Type: TypeString, Description: "Filter by invoice"},
					},
				},
			},
		},
		{
			Name:        "account",
			Shortcuts:   []string{"acct", "ac", "coa"},
			DefaultVerb: "list",
			Description: "Chart of accounts",
			Icon:        "📒",
			Verbs: []Verb{
				{
					Name:            "create",
					Aliases:         []string{"new", "add"},
					Description:     "Create a ledger account",
					RequiresSubject: true,
					Flags: []Flag{
						{Name: "code", Type: TypeString, Required: true, Description: "Account code"},
						{Name: "name", Short: "n", Type: TypeString, Required: true, Description: "Account name"},
						{Name: "type", Short: "t", Type: TypeEnum, Values: []string{"asset", "liability", "equity", "revenue", "expense"}, Description: "Account type"},
					},
				},
				{
					Name:        "list",
					ReadOnly:    true,
					Aliases:     []string{"ls"},
					Description: "List accounts",
					Flags: []Flag{
						{Name: "type", Short: "t", Type: TypeEnum, Values: []string{"asset", "liability", "equity", "revenue", "expense"}, Description: "Filter by type"},
					},
				},
			},
		},
		{
			Name:        "journal",
			Shortcuts:   []string{"je", "jrnl"},
			DefaultVerb: "list",
			Description: "Manual journal entries",
			Icon:        "📓",
			Verbs: []Verb{
				{
					Name:            "create",
					Aliases:         []string{"new", "post"},
					Description:     "Post a journal entry",
					RequiresSubject: true,
					Flags: []Flag{
						{Name: "debit", Type: TypeString, Required: true, Description: "Debit account code"},
						{Name: "credit", Type: TypeString, Required: true, Description: "Credit account code"},
						{Name: "amount", Short: "a", Type: TypeNumber, Required: true, Description: "Amount"},
						{Name: "memo", Short: "m", Type: TypeString, Description: "Narration"},
						{Name: "date", Short: "d", Type: TypeDate, DefaultSource: "today", Description: "Posting date"},
					},
				},
				{
					Name:        "list",
					ReadOnly:    true,
					Aliases:     []string{"ls"},
					Description: "List journal entries",
				},
				{
					Name:            "show",
					ReadOnly:        true,
					Aliases:         []string{"view"},
					Description:     "Show a journal entry",
					RequiresSubject: true,
					Flags: []Flag{
						{Name: "id", Type: TypeString, Required: true, Description: "Entry number"},
					},
				},
			},
		},
	}
}

// BusinessPresets are the two-letter presets for the business grammar.
func BusinessPresets() []Preset {
	return []Preset{
		{Token: "ic", Expansion: "invoice create"},
		{Token: "il", Expansion: "invoice list"},
		{Token: "cc", Expansion: "customer create"},
		{Token: "cl", Expansion: "customer list"},
		{Token: "pr", Expansion: "payment create"},
		{Token: "pl", Expansion: "payment list"},
		{Token: "ui", Expansion: "user invite"},
		{Token: "ul", Expansion: "user list"},
	}
}

// PaletteBuiltins are the commands the palette handles itself.
func PaletteBuiltins() []Builtin {
	return []Builtin{
		{Name: "help", Description: "Show help for a topic", Icon: "❓"},
		{Name: "clear", Description: "Clear the output pane", Icon: "🧹"},
		{Name: "history", Description: "Show frequently used commands", Icon: "🕘"},
	}
}

// Default returns a Registry for the business grammar with its presets and
// built-ins.
func Default() *Registry {
	return NewRegistry(Business()...).
		WithPresets(BusinessPresets()...).
		WithBuiltins(PaletteBuiltins()...)
}
