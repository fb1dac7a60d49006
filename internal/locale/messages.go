package locale

// Message ids.  Grouped by the part of the modal that shows them.
const (
	TitleExpress      MsgID = "form.express.title"
	TitleConsult      MsgID = "form.consult.title"
	TitleSubscription MsgID = "form.subscription.title"

	SubmitExpress      MsgID = "submit.express"
	SubmitExpressPrice MsgID = "submit.express.price" // one %s verb: the price
	SubmitConsult      MsgID = "submit.consult"
	SubmitSubscription MsgID = "submit.subscription"

	PriceTag MsgID = "header.price" // one %s verb: the price

	LabelName        MsgID = "field.name.label"
	LabelEmail       MsgID = "field.email.label"
	LabelWebsite     MsgID = "field.website_url.label"
	LabelPhone       MsgID = "field.phone.label"
	LabelCompany     MsgID = "field.company.label"
	LabelMessage     MsgID = "field.message.label"
	LabelPlan        MsgID = "field.selected_plan.label"
	LabelConsent     MsgID = "field.gdpr_consent.label"
	PlaceholderName  MsgID = "field.name.placeholder"
	PlaceholderEmail MsgID = "field.email.placeholder"
	PlaceholderURL   MsgID = "field.website_url.placeholder"
	PlaceholderPhone MsgID = "field.phone.placeholder"
	PlaceholderCo    MsgID = "field.company.placeholder"
	PlaceholderMsg   MsgID = "field.message.placeholder"

	PlanChoose        MsgID = "plan.choose"
	PlanBasicValue    MsgID = "plan.basic.value"
	PlanBasicLabel    MsgID = "plan.basic.label"
	PlanPriorityValue MsgID = "plan.priority.value"
	PlanPriorityLabel MsgID = "plan.priority.label"
	PlanGrowthValue   MsgID = "plan.growth.value"
	PlanGrowthLabel   MsgID = "plan.growth.label"

	ErrText     MsgID = "error.text"
	ErrEmail    MsgID = "error.email"
	ErrURL      MsgID = "error.url"
	ErrTel      MsgID = "error.tel"
	ErrTextarea MsgID = "error.textarea"
	ErrCompany  MsgID = "error.company"
	ErrSelect   MsgID = "error.select"
	ErrCheckbox MsgID = "error.checkbox"
	ErrRequired MsgID = "error.required"
	ErrInvalid  MsgID = "error.invalid"

	CloseLabel    MsgID = "modal.close"
	LoadingText   MsgID = "status.loading"
	SuccessTitle  MsgID = "status.success.title"
	SuccessText   MsgID = "status.success.text"
	FailureTitle  MsgID = "status.error.title"
	FailureText   MsgID = "status.error.text"
	RateLimitText MsgID = "status.error.rate_limited"
	RetryLabel    MsgID = "status.retry"
)

var builtin = Table{
	Russian: {
		TitleExpress:      "Оставить заявку",
		TitleConsult:      "Обсудить проект",
		TitleSubscription: "Подобрать тариф",

		SubmitExpress:      "Отправить заявку",
		SubmitExpressPrice: "Заказать за %s€",
		SubmitConsult:      "Обсудить проект",
		SubmitSubscription: "Подобрать тариф",
		PriceTag:           "%s€",

		LabelName:        "Имя",
		LabelEmail:       "Email",
		LabelWebsite:     "URL сайта",
		LabelPhone:       "Телефон",
		LabelCompany:     "Компания",
		LabelMessage:     "Сообщение",
		LabelPlan:        "Тариф",
		LabelConsent:     "Я соглашаюсь на обработку персональных данных",
		PlaceholderName:  "Ваше имя",
		PlaceholderEmail: "email@example.com",
		PlaceholderURL:   "https://example.com",
		PlaceholderPhone: "+33 6 12 34 56 78",
		PlaceholderCo:    "Название компании",
		PlaceholderMsg:   "Опишите задачу (минимум 10 символов)...",

		PlanChoose:        "Выберите тариф",
		PlanBasicValue:    "Базовый 79€/мес",
		PlanBasicLabel:    "Базовый - 79€/мес",
		PlanPriorityValue: "Приоритетный 199€/мес",
		PlanPriorityLabel: "Приоритетный - 199€/мес",
		PlanGrowthValue:   "Growth сопровождение от 990€/мес",
		PlanGrowthLabel:   "Growth сопровождение - от 990€/мес",

		ErrText:     "От 2 до 50 символов, только буквы",
		ErrEmail:    "Введите корректный email",
		ErrURL:      "Введите URL (https://example.com)",
		ErrTel:      "Введите от 10 до 15 цифр",
		ErrTextarea: "От 10 до 1000 символов",
		ErrCompany:  "Максимум 100 символов",
		ErrSelect:   "Выберите вариант",
		ErrCheckbox: "Необходимо дать согласие",
		ErrRequired: "Обязательное поле",
		ErrInvalid:  "Некорректное значение",

		CloseLabel:    "Закрыть",
		LoadingText:   "Отправляем заявку...",
		SuccessTitle:  "Заявка отправлена!",
		SuccessText:   "Мы свяжемся с вами в ближайшее время",
		FailureTitle:  "Ошибка отправки",
		FailureText:   "Попробуйте ещё раз или напишите нам в Telegram",
		RateLimitText: "Слишком много заявок. Попробуйте через 10 минут.",
		RetryLabel:    "Попробовать снова",
	},
	English: {
		TitleExpress:      "Leave a request",
		TitleConsult:      "Discuss your project",
		TitleSubscription: "Choose a plan",

		SubmitExpress:      "Send request",
		SubmitExpressPrice: "Order for %s€",
		SubmitConsult:      "Discuss the project",
		SubmitSubscription: "Choose a plan",
		PriceTag:           "%s€",

		LabelName:        "Name",
		LabelEmail:       "Email",
		LabelWebsite:     "Website URL",
		LabelPhone:       "Phone",
		LabelCompany:     "Company",
		LabelMessage:     "Message",
		LabelPlan:        "Plan",
		LabelConsent:     "I agree to the processing of my personal data",
		PlaceholderName:  "Your name",
		PlaceholderEmail: "email@example.com",
		PlaceholderURL:   "https://example.com",
		PlaceholderPhone: "+33 6 12 34 56 78",
		PlaceholderCo:    "Company name",
		PlaceholderMsg:   "Describe your task (at least 10 characters)...",

		PlanChoose:        "Choose a plan",
		PlanBasicValue:    "Basic 79€/mo",
		PlanBasicLabel:    "Basic - 79€/mo",
		PlanPriorityValue: "Priority 199€/mo",
		PlanPriorityLabel: "Priority - 199€/mo",
		PlanGrowthValue:   "Growth support from 990€/mo",
		PlanGrowthLabel:   "Growth support - from 990€/mo",

		ErrText:     "2 to 50 characters, letters only",
		ErrEmail:    "Enter a valid email",
		ErrURL:      "Enter a URL (https://example.com)",
		ErrTel:      "Enter 10 to 15 digits",
		ErrTextarea: "10 to 1000 characters",
		ErrCompany:  "100 characters maximum",
		ErrSelect:   "Choose an option",
		ErrCheckbox: "Consent is required",
		ErrRequired: "Required field",
		ErrInvalid:  "Invalid value",

		CloseLabel:    "Close",
		LoadingText:   "Sending your request...",
		SuccessTitle:  "Request sent!",
		SuccessText:   "We will get back to you shortly",
		FailureTitle:  "Sending failed",
		FailureText:   "Please try again or message us on Telegram",
		RateLimitText: "Too many requests. Please try again in 10 minutes.",
		RetryLabel:    "Try again",
	},
	French: {
		TitleExpress:      "Laisser une demande",
		TitleConsult:      "Discuter du projet",
		TitleSubscription: "Choisir une offre",

		SubmitExpress:      "Envoyer la demande",
		SubmitExpressPrice: "Commander pour %s€",
		SubmitConsult:      "Discuter du projet",
		SubmitSubscription: "Choisir une offre",
		PriceTag:           "%s€",

		LabelName:        "Nom",
		LabelEmail:       "Email",
		LabelWebsite:     "URL du site",
		LabelPhone:       "Téléphone",
		LabelCompany:     "Entreprise",
		LabelMessage:     "Message",
		LabelPlan:        "Offre",
		LabelConsent:     "J'accepte le traitement de mes données personnelles",
		PlaceholderName:  "Votre nom",
		PlaceholderEmail: "email@example.com",
		PlaceholderURL:   "https://example.com",
		PlaceholderPhone: "+33 6 12 34 56 78",
		PlaceholderCo:    "Nom de l'entreprise",
		PlaceholderMsg:   "Décrivez votre besoin (10 caractères minimum)...",

		PlanChoose:        "Choisissez une offre",
		PlanBasicValue:    "Basique 79€/mois",
		PlanBasicLabel:    "Basique - 79€/mois",
		PlanPriorityValue: "Prioritaire 199€/mois",
		PlanPriorityLabel: "Prioritaire - 199€/mois",
		PlanGrowthValue:   "Accompagnement Growth dès 990€/mois",
		PlanGrowthLabel:   "Accompagnement Growth - dès 990€/mois",

		ErrText:     "De 2 à 50 caractères, lettres uniquement",
		ErrEmail:    "Saisissez un email valide",
		ErrURL:      "Saisissez une URL (https://example.com)",
		ErrTel:      "Saisissez de 10 à 15 chiffres",
		ErrTextarea: "De 10 à 1000 caractères",
		ErrCompany:  "100 caractères maximum",
		ErrSelect:   "Choisissez une option",
		ErrCheckbox: "Le consentement est requis",
		ErrRequired: "Champ obligatoire",
		ErrInvalid:  "Valeur incorrecte",

		CloseLabel:    "Fermer",
		LoadingText:   "Envoi de la demande...",
		SuccessTitle:  "Demande envoyée !",
		SuccessText:   "Nous vous contacterons très bientôt",
		FailureTitle:  "Échec de l'envoi",
		FailureText:   "Réessayez ou écrivez-nous sur Telegram",
		RateLimitText: "Trop de demandes. Réessayez dans 10 minutes.",
		RetryLabel:    "Réessayer",
	},
}
