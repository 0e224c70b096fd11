package main

import "encoding/json"

func defaultConfigTemplate() Config {
	return Config{
		Notifications: NotificationsConfig{
			Usage:   TableNotifyConfig{Enabled: false},
			Flagged: TableNotifyConfig{Enabled: true},
		},
		Intervals: IntervalsConfig{
			ClassifySeconds: 10,
			CacheTTLSeconds: 15,
			StatusSeconds:   60,
			DebounceMillis:  750,
		},
		Sampling: SamplingConfig{Workers: 4},
		Kill:     KillConfig{TimeoutSeconds: 3},
	}
}

// fillMissingConfigFields merges the default template into a parsed config
// map, preserving every value the operator set explicitly. Returns true when
// anything was added.
func fillMissingConfigFields(configMap map[string]interface{}) bool {
	defaults := defaultConfigTemplate()
	defaultBytes, err := json.Marshal(defaults)
	if err != nil {
		return false
	}
	var defaultMap map[string]interface{}
	if err := json.Unmarshal(defaultBytes, &defaultMap); err != nil {
		return false
	}
	return fillMissingMap(configMap, defaultMap)
}

func fillMissingMap(configMap, defaultMap map[string]interface{}) bool {
	changed := false
	for key, defaultValue := range defaultMap {
		currentValue, exists := configMap[key]
		if !exists || currentValue == nil {
			configMap[key] = defaultValue
			changed = true
			continue
		}

		currentMap, currentIsMap := currentValue.(map[string]interface{})
		defaultSubMap, defaultIsMap := defaultValue.(map[string]interface{})
		if currentIsMap && defaultIsMap {
			if fillMissingMap(currentMap, defaultSubMap) {
				changed = true
			}
		}
	}
	return changed
}
