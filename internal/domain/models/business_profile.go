package models

// BusinessType is the merchant category used by the risk scorer.
// Unknown categories collapse into BusinessTypeOther.
type BusinessType string

const (
	BusinessTypeEcommerce  BusinessType = "ecommerce"
	BusinessTypeSaaS       BusinessType = "saas"
	BusinessTypeFintech    BusinessType = "fintech"
	BusinessTypeHealthcare BusinessType = "healthcare"
	BusinessTypeEducation  BusinessType = "education"
	BusinessTypeNonprofit  BusinessType = "nonprofit"
	BusinessTypeOther      BusinessType = "other"
)

// ParseBusinessType maps a raw category onto a BusinessType using exact,
// case-sensitive matching.
func ParseBusinessType(raw string) BusinessType {
	switch t := BusinessType(raw); t {
	case BusinessTypeEcommerce, BusinessTypeSaaS, BusinessTypeFintech,
		BusinessTypeHealthcare, BusinessTypeEducation, BusinessTypeNonprofit:
		return t
	default:
		return BusinessTypeOther
	}
}

// UnmarshalText lets JSON and form decoding go through ParseBusinessType.
func (t *BusinessType) UnmarshalText(text []byte) error {
	*t = ParseBusinessType(string(text))
	return nil
}

// MonthlyVolume is the processing-volume bucket declared at signup.
type MonthlyVolume string

const (
	MonthlyVolume1MPlus     MonthlyVolume = "1m+"
	MonthlyVolume250kTo1M   MonthlyVolume = "250k-1m"
	MonthlyVolume100kTo250k MonthlyVolume = "100k-250k"
	MonthlyVolume50kTo100k  MonthlyVolume = "50k-100k"
	MonthlyVolumeOther      MonthlyVolume = "other"
)

// ParseMonthlyVolume maps a raw bucket onto a MonthlyVolume using exact,
// case-sensitive matching.
func ParseMonthlyVolume(raw string) MonthlyVolume {
	switch v := MonthlyVolume(raw); v {
	case MonthlyVolume1MPlus, MonthlyVolume250kTo1M, MonthlyVolume100kTo250k, MonthlyVolume50kTo100k:
		return v
	default:
		return MonthlyVolumeOther
	}
}

func (v *MonthlyVolume) UnmarshalText(text []byte) error {
	*v = ParseMonthlyVolume(string(text))
	return nil
}

// BusinessProfile is the merchant data collected by the signup funnel.
// Only BusinessType and MonthlyVolume influence the score.
type BusinessProfile struct {
	BusinessName  string        `json:"business_name"`
	Email         string        `json:"email"`
	Website       string        `json:"website,omitempty"`
	BusinessType  BusinessType  `json:"business_type"`
	MonthlyVolume MonthlyVolume `json:"monthly_volume"`
	Country       string        `json:"country"`
}

// NewBusinessProfile builds a profile from raw form values.
func NewBusinessProfile(name, email, website, businessType, monthlyVolume, country string) *BusinessProfile {
	return &BusinessProfile{
		BusinessName:  name,
		Email:         email,
		Website:       website,
		BusinessType:  ParseBusinessType(businessType),
		MonthlyVolume: ParseMonthlyVolume(monthlyVolume),
		Country:       country,
	}
}
