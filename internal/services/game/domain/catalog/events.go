package catalog

// EventType categorises a monthly event.
type EventType string

const (
	EventMedical   EventType = "medical"
	EventCropLoss  EventType = "crop_loss"
	EventGoodRain  EventType = "good_rain"
	EventLoanOffer EventType = "loan_offer"
	EventFestival  EventType = "festival"
	EventEquipment EventType = "equipment"
	EventBonus     EventType = "bonus"
)

// Valid reports whether t is one of the known categories.
func (t EventType) Valid() bool {
	switch t {
	case EventMedical, EventCropLoss, EventGoodRain, EventLoanOffer,
		EventFestival, EventEquipment, EventBonus:
		return true
	default:
		return false
	}
}

// Event is a catalog entry drawn at the start of each month. Zero Cost and
// Reward mean the event carries no balance effect of that kind. Interest is
// informational and only set on loan offers.
type Event struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Cost        int64     `json:"cost,omitempty"`
	Reward      int64     `json:"reward,omitempty"`
	Interest    float64   `json:"interest,omitempty"`
}

var events = []Event{
	{ID: "medical_1", Type: EventMedical, Title: "Medical Emergency", Description: "A family member fell sick and needs immediate treatment.", Cost: 25000},
	{ID: "medical_2", Type: EventMedical, Title: "Hospital Visit", Description: "Your child needs medical attention and medicines.", Cost: 18000},
	{ID: "medical_3", Type: EventMedical, Title: "Accident Injury", Description: "You hurt yourself while working and need treatment.", Cost: 22000},
	{ID: "crop_loss_1", Type: EventCropLoss, Title: "Pest Attack", Description: "Pests damaged a portion of your crops.", Cost: 40000},
	{ID: "crop_loss_2", Type: EventCropLoss, Title: "Drought Impact", Description: "Lack of rain affected your harvest yield.", Cost: 35000},
	{ID: "crop_loss_3", Type: EventCropLoss, Title: "Flood Damage", Description: "Heavy rains flooded your fields and ruined crops.", Cost: 45000},
	{ID: "festival_1", Type: EventFestival, Title: "Festival Season", Description: "It's festival time! Family expects gifts and celebrations.", Cost: 20000},
	{ID: "festival_2", Type: EventFestival, Title: "Wedding in Family", Description: "A relative's wedding requires contribution and gifts.", Cost: 30000},
	{ID: "equipment_1", Type: EventEquipment, Title: "Tool Repair", Description: "Your farming equipment needs urgent repair.", Cost: 12000},
	{ID: "equipment_2", Type: EventEquipment, Title: "Pump Breakdown", Description: "Your water pump broke and needs replacement parts.", Cost: 25000},
	{ID: "equipment_3", Type: EventEquipment, Title: "Tractor Service", Description: "Your tractor requires immediate servicing.", Cost: 18000},
	{ID: "medical_4", Type: EventMedical, Title: "Medicine Costs", Description: "Monthly medicines for elderly parents are needed.", Cost: 10000},
	{ID: "good_rain_1", Type: EventGoodRain, Title: "Excellent Harvest", Description: "Good rainfall blessed your fields with a bumper crop!", Reward: 30000},
	{ID: "bonus_1", Type: EventBonus, Title: "Government Subsidy", Description: "You received a farming subsidy from the government.", Reward: 25000},
	{ID: "bonus_2", Type: EventBonus, Title: "Crop Bonus", Description: "You got a bonus for delivering quality produce.", Reward: 20000},
	{ID: "loan_offer_1", Type: EventLoanOffer, Title: "Quick Loan Offer", Description: "An agent offers you a quick loan at 5% monthly interest.", Interest: 5},
}

// Events returns the event deck in draw order. The engine draws an index in
// [0, len(Events())) from its random source.
func Events() []Event {
	return append([]Event(nil), events...)
}

// EventCount is the size of the deck.
func EventCount() int {
	return len(events)
}

// EventAt returns the i-th deck entry. It panics when i is out of range, as
// indexing the slice would.
func EventAt(i int) Event {
	return events[i]
}

// EventByID finds a deck entry by id.
func EventByID(id string) (Event, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}
