// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// Multiplicadores usados para derivar os ganhos a partir do valor diário
const (
	WeeklyMultiplier  = 7
	MonthlyMultiplier = 30
	YearlyMultiplier  = 365
)

type Earnings struct {
	Daily   float64 `json:"daily" mapstructure:"daily"`
	Weekly  float64 `json:"weekly" mapstructure:"weekly"`
	Monthly float64 `json:"monthly" mapstructure:"monthly"`
	Yearly  float64 `json:"yearly" mapstructure:"yearly"`
}

type Referral struct {
	ID        string    `json:"id" mapstructure:"-"`
	Name      string    `json:"name" mapstructure:"name"`
	Email     string    `json:"email" mapstructure:"email"`
	Phone     string    `json:"phone,omitempty" mapstructure:"phone"`
	Referrer  string    `json:"referrer" mapstructure:"referrer"`
	Earnings  Earnings  `json:"earnings" mapstructure:"earnings"`
	PageURL   string    `json:"page_url" mapstructure:"-"`
	CreatedAt time.Time `json:"created_at" mapstructure:"-"`
}

// ReferralSummary é a visão resumida usada na listagem administrativa
type ReferralSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Referrer  string    `json:"referrer"`
	PageURL   string    `json:"page_url"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Referral) Summary() ReferralSummary {
	return ReferralSummary{
		ID:        r.ID,
		Name:      r.Name,
		Referrer:  r.Referrer,
		PageURL:   r.PageURL,
		CreatedAt: r.CreatedAt,
	}
}

type ReferralFilters struct {
	Since    *time.Time
	Referrer string
}
