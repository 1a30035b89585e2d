// Package mission provides mission file management for the rover command engine.
//
// A mission is a named scenario: a start state, an instruction string, and
// optionally the rendered state the rover is expected to finish in. Missions
// are stored as JSON (*.json) or YAML (*.yaml, *.yml) files in a missions
// directory:
//
//	{
//	  "name": "Square",
//	  "description": "Drive a unit square and step forward",
//	  "start": "0 0 N",
//	  "instructions": "LMLMLMLMM",
//	  "expected": "0 1 N"
//	}
//
// Usage:
//
//	manager, err := mission.NewManager("missions", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	m, err := manager.LoadMission("square")
//	missions, err := manager.ListMissions()
//	results, err := manager.Validate()
//
// Validation:
//
// Loading checks a mission for a name, a start state accepted by
// engine.ParseStart, an instruction string accepted by
// engine.ParseInstructions, and an expected state accepted by
// engine.ParseState. Validate additionally runs each mission and reports
// those that do not end at their expected state.
package mission
