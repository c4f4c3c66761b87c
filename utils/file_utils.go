package utils

import (
	"encoding/json"
	"os"
	"path/filepath"

	"level-bot/model"
)

// LeaderboardStateFile records where each guild's persistent leaderboard message lives.
var LeaderboardStateFile = "data/leaderboard_state.json"

func SaveLeaderboardState(states map[string]model.LeaderboardState) error {
	data, err := json.MarshalIndent(states, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(LeaderboardStateFile), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(LeaderboardStateFile, data, 0644)
}

func LoadLeaderboardState() (map[string]model.LeaderboardState, error) {
	states := make(map[string]model.LeaderboardState)
	data, err := os.ReadFile(LeaderboardStateFile)
	if err != nil {
		if os.IsNotExist(err) {
			return states, nil // Return empty map if file doesn't exist
		}
		return nil, err
	}
	if len(data) == 0 {
		return states, nil
	}
	err = json.Unmarshal(data, &states)
	return states, err
}

// FileSize returns the size of a file in bytes, or 0 if it cannot be read.
func FileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
