package entity

// PlanID はサブスクリプションプランの識別子です。
type PlanID string

const (
	PlanBase     PlanID = "base"
	PlanMedium   PlanID = "medium"
	PlanAdvanced PlanID = "advanced"
	PlanUltra    PlanID = "ultra"
)

// Plan は1つのサブスクリプション階層を表します。
// AdvisorLimit はAIアドバイザーの1日あたりの利用回数上限です。
type Plan struct {
	Name         string `json:"name"`
	Price        string `json:"price"`
	AdvisorLimit int    `json:"aiLimit"`
}

// plans は4階層の固定プランカタログです。
var plans = map[PlanID]Plan{
	PlanBase:     {Name: "Savings Base", Price: "5€", AdvisorLimit: 1},
	PlanMedium:   {Name: "Savings Medium", Price: "7€", AdvisorLimit: 5},
	PlanAdvanced: {Name: "Savings Advanced", Price: "10€", AdvisorLimit: 15},
	PlanUltra:    {Name: "Savings Ultra", Price: "15€", AdvisorLimit: 9999},
}

// PlanByID はプランIDに対応するプランを返します。未知のIDはbaseとして扱います。
func PlanByID(id PlanID) Plan {
	if p, ok := plans[id]; ok {
		return p
	}
	return plans[PlanBase]
}

// Valid は既知のプランIDかどうかを返します。
func (id PlanID) Valid() bool {
	_, ok := plans[id]
	return ok
}

// Valid は既知のサブスクリプション状態かどうかを返します。
func (s SubscriptionStatus) Valid() bool {
	switch s {
	case StatusTrial, StatusActive, StatusExpired:
		return true
	}
	return false
}
