package types

// PeriodType is a selectable aggregation window for the bucketed charts.
type PeriodType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ChartType is a rendering style for the quick graph. It has no effect on
// the aggregated data itself.
type ChartType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

var PeriodTypes = []PeriodType{
	{ID: 1, Name: "week"},
	{ID: 2, Name: "month"},
	{ID: 3, Name: "3months"},
	{ID: 4, Name: "year"},
	{ID: 5, Name: "alltime"},
}

var ChartTypes = []ChartType{
	{ID: 1, Name: "bar"},
	{ID: 2, Name: "line"},
	{ID: 3, Name: "area"},
}

// ThemeNames lists the client themes the settings endpoint accepts.
var ThemeNames = []string{"default", "light"}

func GetPeriodTypeByName(name string) *PeriodType {
	for _, t := range PeriodTypes {
		if t.Name == name {
			return &t
		}
	}
	return nil
}

func GetChartTypeByName(name string) *ChartType {
	for _, t := range ChartTypes {
		if t.Name == name {
			return &t
		}
	}
	return nil
}

func IsValidTheme(name string) bool {
	for _, t := range ThemeNames {
		if t == name {
			return true
		}
	}
	return false
}
