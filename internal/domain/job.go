package domain

// Job billable service task with a duration and an hourly rate
type Job struct {
	ID           string
	Name         string
	Duration     int // minutes
	PricePerHour float64
	Quality      *string
}

// PartItem inventory part with cost and consumer-facing price
type PartItem struct {
	ID               string
	Title            string
	Quality          string
	Price            float64
	PriceForConsumer float64
	InStock          bool
	Quantity         int // -1 = stock not tracked
	CarID            *string
}

// Available returns true if the part can be offered for selection
func (p *PartItem) Available() bool {
	return p.InStock && p.Quantity != 0
}

// FilterInStock keeps only parts that can be selected, preserving order
func FilterInStock(items []PartItem) []PartItem {
	result := make([]PartItem, 0, len(items))
	for _, item := range items {
		if item.Available() {
			result = append(result, item)
		}
	}
	return result
}
