package domain

const (
	PlanBasic    = "basic"
	PlanStandard = "standard"
	PlanPremium  = "premium"

	DefaultPlan = PlanBasic
)

// Тариф (статический каталог, в БД не хранится)
type Plan struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Features    []string `json:"features"`
}

var plans = []Plan{
	{
		ID:          PlanBasic,
		Name:        "Basic",
		Description: "Watch on 1 screen at a time in standard definition",
		Price:       "£6.99/month",
		Features: []string{
			"Unlimited movies and TV shows",
			"Watch on 1 supported device at a time",
			"Standard definition (SD)",
			"Download on 1 supported device",
		},
	},
	{
		ID:          PlanStandard,
		Name:        "Standard",
		Description: "Watch on 2 screens at a time in HD",
		Price:       "£10.99/month",
		Features: []string{
			"Unlimited movies and TV shows",
			"Watch on 2 supported devices at a time",
			"High definition (HD)",
			"Download on 2 supported devices",
		},
	},
	{
		ID:          PlanPremium,
		Name:        "Premium",
		Description: "Watch on 4 screens at a time in Ultra HD",
		Price:       "£15.99/month",
		Features: []string{
			"Unlimited movies and TV shows",
			"Watch on 4 supported devices at a time",
			"Ultra High definition (UHD)",
			"Download on 4 supported devices",
		},
	},
}

// Plans returns a fresh copy of the catalog, callers may modify it.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	for i, p := range plans {
		p.Features = append([]string(nil), p.Features...)
		out[i] = p
	}
	return out
}

func IsValidPlan(id string) bool {
	for _, p := range plans {
		if p.ID == id {
			return true
		}
	}
	return false
}
