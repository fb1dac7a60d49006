package catalog

import "github.com/yanizio/leadmodal/internal/locale"

// contactFields are shared by every form type, in render order.
func contactFields(m locale.Messages) []FieldSpec {
	return []FieldSpec{
		{Name: FieldName, Label: m.Get(locale.LabelName), Kind: KindText, Placeholder: m.Get(locale.PlaceholderName), Required: true},
		{Name: FieldEmail, Label: m.Get(locale.LabelEmail), Kind: KindEmail, Placeholder: m.Get(locale.PlaceholderEmail), Required: true},
		{Name: FieldWebsite, Label: m.Get(locale.LabelWebsite), Kind: KindURL, Placeholder: m.Get(locale.PlaceholderURL), Required: true},
		{Name: FieldPhone, Label: m.Get(locale.LabelPhone), Kind: KindTel, Placeholder: m.Get(locale.PlaceholderPhone)},
	}
}

func builtinSchemas(m locale.Messages) []*Schema {
	express := &Schema{
		Type:   Express,
		Title:  m.Get(locale.TitleExpress),
		Fields: contactFields(m),
		SubmitText: func(price string) string {
			if price != "" {
				return m.Format(locale.SubmitExpressPrice, price)
			}
			return m.Get(locale.SubmitExpress)
		},
	}

	consult := &Schema{
		Type:  Consult,
		Title: m.Get(locale.TitleConsult),
		Fields: append(contactFields(m),
			FieldSpec{Name: FieldCompany, Label: m.Get(locale.LabelCompany), Kind: KindCompany, Placeholder: m.Get(locale.PlaceholderCo)},
			FieldSpec{Name: FieldMessage, Label: m.Get(locale.LabelMessage), Kind: KindTextarea, Placeholder: m.Get(locale.PlaceholderMsg)},
		),
		SubmitText: func(string) string { return m.Get(locale.SubmitConsult) },
	}

	subscription := &Schema{
		Type:  Subscription,
		Title: m.Get(locale.TitleSubscription),
		Fields: append(contactFields(m),
			FieldSpec{
				Name:     FieldPlan,
				Label:    m.Get(locale.LabelPlan),
				Kind:     KindSelect,
				Required: true,
				Options: []Option{
					{Value: "", Label: m.Get(locale.PlanChoose)},
					{Value: m.Get(locale.PlanBasicValue), Label: m.Get(locale.PlanBasicLabel)},
					{Value: m.Get(locale.PlanPriorityValue), Label: m.Get(locale.PlanPriorityLabel)},
					{Value: m.Get(locale.PlanGrowthValue), Label: m.Get(locale.PlanGrowthLabel)},
				},
			},
		),
		SubmitText: func(string) string { return m.Get(locale.SubmitSubscription) },
	}

	return []*Schema{express, consult, subscription}
}

// ConsentSpec is the fixed consent checkbox shown under every form.  It is
// validated with the schema fields but is not part of any schema.
func ConsentSpec(m locale.Messages) FieldSpec {
	return FieldSpec{
		Name:     FieldConsent,
		Label:    m.Get(locale.LabelConsent),
		Kind:     KindCheckbox,
		Required: true,
	}
}
