// Package analytics aggregates ledger rows into the console's dashboard
// figures. Callers pass rows that are already filtered to a date range;
// soft-deleted rows are skipped here as well.
package analytics

import (
	"sort"
	"time"

	"nailpos/internal/model"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

type Totals struct {
	Sales        int
	Revenue      decimal.Decimal
	MeanTicket   decimal.Decimal
	MedianTicket decimal.Decimal
}

type WeekdayRevenue struct {
	Weekday time.Weekday
	Sales   int
	Revenue decimal.Decimal
}

type StaffTotal struct {
	UserID     string
	Name       string
	Sales      int
	Revenue    decimal.Decimal
	Commission decimal.Decimal
}

type ServiceTotal struct {
	ServiceID string
	Name      string
	Count     int
	Revenue   decimal.Decimal
}

type Summary struct {
	Totals     Totals
	ByWeekday  []WeekdayRevenue // Sunday..Saturday, always 7 entries
	Staff      []StaffTotal     // best first
	Services   []ServiceTotal   // most sold first
	TopStaff   *StaffTotal
	TopService *ServiceTotal
}

// Summarize computes every dashboard figure in one pass. Weekdays are taken
// in loc; a nil loc means UTC.
func Summarize(sales []model.Sale, loc *time.Location) Summary {
	if loc == nil {
		loc = time.UTC
	}
	week := make([]WeekdayRevenue, 7)
	for d := range week {
		week[d] = WeekdayRevenue{Weekday: time.Weekday(d), Revenue: decimal.Zero}
	}

	var tickets stats.Float64Data
	revenue := decimal.Zero
	services := map[string]*ServiceTotal{}

	live := liveSales(sales)
	for i := range live {
		s := &live[i]
		revenue = revenue.Add(s.Cost)
		tickets = append(tickets, s.Cost.InexactFloat64())

		wd := s.OccurredAt.In(loc).Weekday()
		week[wd].Sales++
		week[wd].Revenue = week[wd].Revenue.Add(s.Cost)

		for _, it := range s.Items {
			key := it.ServiceID
			if key == "" {
				key = "name:" + it.ServiceName
			}
			st, ok := services[key]
			if !ok {
				st = &ServiceTotal{ServiceID: it.ServiceID, Name: it.ServiceName, Revenue: decimal.Zero}
				services[key] = st
			}
			st.Count++
			st.Revenue = st.Revenue.Add(it.ServicePrice)
		}
	}

	sum := Summary{
		Totals:    Totals{Sales: len(live), Revenue: revenue, MeanTicket: decimal.Zero, MedianTicket: decimal.Zero},
		ByWeekday: week,
		Staff:     ByStaff(live),
	}
	if mean, err := stats.Mean(tickets); err == nil {
		sum.Totals.MeanTicket = decimal.NewFromFloat(mean).Round(2)
	}
	if median, err := stats.Median(tickets); err == nil {
		sum.Totals.MedianTicket = decimal.NewFromFloat(median).Round(2)
	}

	for _, st := range services {
		sum.Services = append(sum.Services, *st)
	}
	sort.Slice(sum.Services, func(i, j int) bool {
		a, b := sum.Services[i], sum.Services[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if c := a.Revenue.Cmp(b.Revenue); c != 0 {
			return c > 0
		}
		return a.Name < b.Name
	})

	if len(sum.Staff) > 0 {
		top := sum.Staff[0]
		sum.TopStaff = &top
	}
	if len(sum.Services) > 0 {
		top := sum.Services[0]
		sum.TopService = &top
	}
	return sum
}

// ByStaff groups live sales per staff member, highest revenue first, ties by
// name. Commission is the sum of each sale's own commission snapshot.
func ByStaff(sales []model.Sale) []StaffTotal {
	byID := map[string]*StaffTotal{}
	for _, s := range liveSales(sales) {
		st, ok := byID[s.UserID]
		if !ok {
			st = &StaffTotal{UserID: s.UserID, Name: s.UserName, Revenue: decimal.Zero, Commission: decimal.Zero}
			byID[s.UserID] = st
		}
		st.Sales++
		st.Revenue = st.Revenue.Add(s.Cost)
		st.Commission = st.Commission.Add(s.Commission())
	}
	out := make([]StaffTotal, 0, len(byID))
	for _, st := range byID {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func liveSales(sales []model.Sale) []model.Sale {
	out := make([]model.Sale, 0, len(sales))
	for _, s := range sales {
		if !s.Deleted {
			out = append(out, s)
		}
	}
	return out
}
