package models

// Ability is a passive creature ability.
type Ability struct {
	ID           int                `json:"id" validate:"gt=0"`
	Name         string             `json:"name" validate:"notblank"`
	SourceURL    string             `json:"source_url"`
	IsMainSeries bool               `json:"is_main_series"`
	Generation   *string            `json:"generation"`
	Effect       VersionMap[string] `json:"effect"`
	ShortEffect  *string            `json:"short_effect"`
	FlavorText   VersionMap[string] `json:"flavor_text"`
	Changes      ChangeLog          `json:"changes"`
}

// Kind implements Record.
func (a *Ability) Kind() Kind { return KindAbility }

// Validate implements Record.
func (a *Ability) Validate() error { return validateRecord(KindAbility, a.Name, a) }

// ChangeLog implements Record.
func (a *Ability) ChangeLog() *ChangeLog { return &a.Changes }
