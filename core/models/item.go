package models

// Item is a bag item.
type Item struct {
	ID          int                `json:"id" validate:"gt=0"`
	Name        string             `json:"name" validate:"notblank"`
	SourceURL   string             `json:"source_url"`
	Cost        int                `json:"cost" validate:"gte=0"`
	FlingPower  *int               `json:"fling_power" validate:"omitempty,gte=0"`
	FlingEffect *string            `json:"fling_effect"`
	Attributes  []string           `json:"attributes"`
	Category    string             `json:"category" validate:"notblank"`
	Effect      string             `json:"effect"`
	ShortEffect string             `json:"short_effect"`
	FlavorText  VersionMap[string] `json:"flavor_text"`
	Sprite      string             `json:"sprite"`
	Changes     ChangeLog          `json:"changes"`
}

// Kind implements Record.
func (i *Item) Kind() Kind { return KindItem }

// Validate implements Record.
func (i *Item) Validate() error { return validateRecord(KindItem, i.Name, i) }

// ChangeLog implements Record.
func (i *Item) ChangeLog() *ChangeLog { return &i.Changes }
