package variant

type defaultVariant struct {
	name    string
	spec    ProducerSpec
	k       int
	display Display
}

// The k values were picked from the elbow plots of the London trial data.
var defaultVariants = []defaultVariant{
	{
		name:    "total_usage",
		spec:    ProducerSpec{Kind: KindAverage},
		k:       4,
		display: Display{YLabel: "Electricity usage (kWh)", YMin: 0, YMax: 4},
	},
	{
		name:    "normalised_usage",
		spec:    ProducerSpec{Kind: KindAverage, Normalised: true},
		k:       4,
		display: Display{YLabel: "Electricity usage (normalised)", YMin: 0, YMax: 0.2, Normalised: true},
	},
	{
		name:    "weekday_weekend_diff",
		spec:    ProducerSpec{Kind: KindDayTypeContrast, Mode: "diff"},
		k:       3,
		display: Display{YLabel: "Mean weekend usage - mean weekday usage (kWh)", YMin: -1, YMax: 1},
	},
	{
		name:    "weekday_weekend_ratio",
		spec:    ProducerSpec{Kind: KindDayTypeContrast, Mode: "ratio"},
		k:       2,
		display: Display{YLabel: "Mean weekend usage / mean weekday usage", YMin: 0, YMax: 10},
	},
	{
		name:    "winter_summer_diff",
		spec:    ProducerSpec{Kind: KindSeasonContrast, Season1: "winter", Season2: "summer"},
		k:       4,
		display: Display{YLabel: "Mean winter usage - mean summer usage (kWh)", YMin: -1, YMax: 4},
	},
	{
		name:    "summer_rest_diff",
		spec:    ProducerSpec{Kind: KindSeasonContrast, Season1: "summer", Season2: "spring and autumn"},
		k:       4,
		display: Display{YLabel: "Mean summer usage - mean spring/autumn usage (kWh)", YMin: -2, YMax: 1},
	},
	{
		name:    "cumulative_normalised",
		spec:    ProducerSpec{Kind: KindAverage, Normalised: true, Cumulative: true},
		k:       3,
		display: Display{YLabel: "Cumulative normalised daily mean usage", YMin: 0, YMax: 1, Normalised: true},
	},
}

// Defaults returns the standard seven variants.
func Defaults() *Registry {
	r := NewRegistry()
	for _, v := range defaultVariants {
		if err := r.register(v.name, v.spec, v.k, v.display); err != nil {
			panic(err)
		}
	}
	return r
}
