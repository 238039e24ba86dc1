package history

import "PriceSentinel/internal/model"

// ExtractObservation builds a dated observation from a model's current pricing.
// Each route is taken independently and only when it has both an input and an
// output price. The boolean is false when no route qualifies.
func ExtractObservation(p *model.Pricing, date string) (model.PriceObservation, bool) {
	obs := model.PriceObservation{Date: date, Routes: make(map[string]model.RoutePrice)}
	if p == nil {
		return obs, false
	}

	direct := p.Direct
	if direct == nil {
		direct = &model.RoutePricing{
			InputPer1M:  p.InputPer1M,
			OutputPer1M: p.OutputPer1M,
			Currency:    p.Currency,
		}
	}
	addRoute(obs.Routes, model.RouteDirect, direct)
	addRoute(obs.Routes, model.RouteOpenRouter, p.OpenRouter)
	addRoute(obs.Routes, model.RouteSynthetic, p.SyntheticRoute)

	return obs, len(obs.Routes) > 0
}

func addRoute(routes map[string]model.RoutePrice, name string, rp *model.RoutePricing) {
	if !rp.Complete() {
		return
	}
	currency := rp.Currency
	if currency == "" {
		currency = model.DefaultCurrency
	}
	routes[name] = model.RoutePrice{
		InputPer1M:  *rp.InputPer1M,
		OutputPer1M: *rp.OutputPer1M,
		Currency:    currency,
	}
}
