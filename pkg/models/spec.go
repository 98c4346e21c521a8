package models

// ContractKind names an option variant in a ContractSpec.
type ContractKind string

const (
	KindCall         ContractKind = "call"
	KindPut          ContractKind = "put"
	KindAsian        ContractKind = "asian"
	KindBarrier      ContractKind = "barrier"
	KindLookback     ContractKind = "lookback"
	KindChooser      ContractKind = "chooser"
	KindBinary       ContractKind = "binary"
	KindForwardStart ContractKind = "forward_start"
)

// Category is the display label of a contract kind.
type Category string

const (
	CategoryVanilla Category = "Vanilla"
	CategoryExotic  Category = "Exotic"
)

func (k ContractKind) Category() Category {
	switch k {
	case KindCall, KindPut:
		return CategoryVanilla
	}
	return CategoryExotic
}

// ContractSpec is a declarative contract description read from config files
// and API bodies. Fields that do not apply to Kind are ignored.
type ContractSpec struct {
	Name    string       `json:"name" mapstructure:"name"`
	Kind    ContractKind `json:"kind" mapstructure:"kind"`
	Strike  *float64     `json:"strike,omitempty" mapstructure:"strike"`
	Expiry  float64      `json:"expiry" mapstructure:"expiry"`
	Premium float64      `json:"premium" mapstructure:"premium"`
	IsCall  *bool        `json:"is_call,omitempty" mapstructure:"is_call"`

	AverageType  string  `json:"average_type,omitempty" mapstructure:"average_type"`
	Barrier      float64 `json:"barrier,omitempty" mapstructure:"barrier"`
	KnockIn      *bool   `json:"knock_in,omitempty" mapstructure:"knock_in"`
	Up           *bool   `json:"up,omitempty" mapstructure:"up"`
	LookbackType string  `json:"lookback_type,omitempty" mapstructure:"lookback_type"`
	ChoiceIndex  int     `json:"choice_index,omitempty" mapstructure:"choice_index"`
	Payout       float64 `json:"payout,omitempty" mapstructure:"payout"`
	FixingIndex  int     `json:"fixing_index,omitempty" mapstructure:"fixing_index"`
}

// Call reports the direction, defaulting to call when unset.
func (s ContractSpec) Call() bool {
	return s.IsCall == nil || *s.IsCall
}

// KnockInBarrier reports the barrier activation, defaulting to knock-in.
func (s ContractSpec) KnockInBarrier() bool {
	return s.KnockIn == nil || *s.KnockIn
}

// UpBarrier reports the barrier direction, defaulting to up.
func (s ContractSpec) UpBarrier() bool {
	return s.Up == nil || *s.Up
}

// DisplayName is Name, or "<Category> <kind>" when Name is empty.
func (s ContractSpec) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return string(s.Kind.Category()) + " " + string(s.Kind)
}
