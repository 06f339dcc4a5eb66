package tradebook

import "github.com/etnz/tradebook/date"

// Fragment is the part of a lot consumed by a sell.
type Fragment struct {
	Lot      int       // index of the lot in the symbol's lot history
	LotDate  date.Date // date of the buy that opened the lot
	LotEvent string    // ID of the buy that opened the lot
	Quantity Quantity
	UnitCost Money
	Cost     Money // cost released from the lot
}

// SellOutcome is the realized result of a single sell event.
type SellOutcome struct {
	EventID         string
	Date            date.Date
	Symbol          string
	Quantity        Quantity
	Price           Money
	Fees            Money
	Proceeds        Money // price * quantity - fees
	CostOfGoodsSold Money
	RealizedPL      Money
	Fragments       []Fragment
}

func newSellOutcome(e TradeEvent, fragments []Fragment) SellOutcome {
	var cogs Money
	for _, f := range fragments {
		cogs = cogs.Add(f.Cost)
	}
	proceeds := e.Gross().Sub(e.Fees)
	return SellOutcome{
		EventID:         e.ID,
		Date:            e.Date,
		Symbol:          e.Symbol,
		Quantity:        e.Quantity,
		Price:           e.Price,
		Fees:            e.Fees,
		Proceeds:        proceeds,
		CostOfGoodsSold: cogs,
		RealizedPL:      proceeds.Sub(cogs),
		Fragments:       fragments,
	}
}
