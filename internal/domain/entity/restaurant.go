package entity

import (
	"math"
	"time"
)

// Tipos de licencia del modelo híbrido.
const (
	LicenseLifetime     = "lifetime"     // pago único, acceso permanente
	LicenseSubscription = "subscription" // cobro recurrente con vencimiento
)

// Planes de suscripción. Las licencias lifetime no tienen plan.
const (
	PlanTrial   = "trial"
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
)

// Restaurant representa un tenant del sistema con su licencia.
// Invariante: lifetime implica Plan vacío y SubscriptionEndsAt nil;
// subscription implica plan definido y (normalmente) fecha de vencimiento.
type Restaurant struct {
	ID                 string
	Name               string
	LicenseType        string     // LicenseLifetime | LicenseSubscription
	Plan               string     // PlanTrial | PlanMonthly | PlanYearly | "" para lifetime
	SubscriptionEndsAt *time.Time // nil para lifetime
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasValidLicense indica si el restaurante puede operar en este momento.
// Lifetime: basta con estar activo. Subscription: además debe existir una
// fecha de vencimiento no superada.
func (r *Restaurant) HasValidLicense(now time.Time) bool {
	if !r.IsActive {
		return false
	}
	switch r.LicenseType {
	case LicenseLifetime:
		return true
	case LicenseSubscription:
		if r.SubscriptionEndsAt == nil {
			return false
		}
		return !now.After(*r.SubscriptionEndsAt)
	}
	return false
}

// DaysRemaining días de suscripción restantes (redondeo hacia arriba).
// math.MaxInt para lifetime, 0 si no hay vencimiento o ya pasó.
func (r *Restaurant) DaysRemaining(now time.Time) int {
	if r.LicenseType == LicenseLifetime {
		return math.MaxInt
	}
	if r.SubscriptionEndsAt == nil {
		return 0
	}
	diff := r.SubscriptionEndsAt.Sub(now)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// ConvertToLifetime pasa el restaurante a licencia vitalicia: limpia plan y
// vencimiento y lo reactiva.
func (r *Restaurant) ConvertToLifetime() {
	r.LicenseType = LicenseLifetime
	r.Plan = ""
	r.SubscriptionEndsAt = nil
	r.IsActive = true
}

// ExtendSubscription extiende la suscripción `days` días a partir del
// máximo entre ahora y el vencimiento vigente (no regala días ya pagados).
func (r *Restaurant) ExtendSubscription(now time.Time, days int) {
	base := now
	if r.SubscriptionEndsAt != nil && r.SubscriptionEndsAt.After(now) {
		base = *r.SubscriptionEndsAt
	}
	ends := base.AddDate(0, 0, days)
	r.LicenseType = LicenseSubscription
	if r.Plan == "" {
		r.Plan = PlanMonthly
	}
	r.SubscriptionEndsAt = &ends
}
