package repository

import "fmt"

// Dataset selects one of the three parallel corpora the dashboard serves.
type Dataset string

// Known datasets.
const (
	DatasetConsolidated   Dataset = "consolidated"
	DatasetGrouped        Dataset = "grouped"
	DatasetChargingEvents Dataset = "charging-events"
)

// tableSet maps a dataset to its physical tables. Table names are taken
// from this whitelist only; they are never built from request input.
type tableSet struct {
	events   string
	sessions string
	profiles string
}

var datasetTables = map[Dataset]tableSet{
	DatasetConsolidated: {
		events:   "charging_events",
		sessions: "charging_sessions",
		profiles: "user_profiles",
	},
	DatasetGrouped: {
		events:   "grouped_charging_events",
		sessions: "grouped_charging_sessions",
		profiles: "grouped_user_profiles",
	},
	DatasetChargingEvents: {
		events:   "corpus_charging_events",
		sessions: "corpus_charging_sessions",
		profiles: "corpus_user_profiles",
	},
}

// ParseDataset validates a request parameter, defaulting to consolidated.
func ParseDataset(raw string) (Dataset, error) {
	if raw == "" {
		return DatasetConsolidated, nil
	}
	ds := Dataset(raw)
	if _, ok := datasetTables[ds]; !ok {
		return "", fmt.Errorf("unknown dataset %q", raw)
	}
	return ds, nil
}

func tablesFor(ds Dataset) (tableSet, error) {
	tables, ok := datasetTables[ds]
	if !ok {
		return tableSet{}, fmt.Errorf("unknown dataset %q", ds)
	}
	return tables, nil
}
