package domain

type Config struct {
	MusicDir     string       `mapstructure:"musicDir"`
	MpvSocket    string       `mapstructure:"mpvSocket"`
	HistoryLimit int          `mapstructure:"historyLimit"`
	Ticker       TickerConfig `mapstructure:"ticker"`
}

// TickerConfig tunes the synchronized time tracker.
type TickerConfig struct {
	// LeadOffsetMs is added to each wake-up interval so the tracker fires
	// just after, never before, a full second of playback.
	LeadOffsetMs int `mapstructure:"leadOffsetMs"`
	// ResyncThresholdMs is the largest scheduled-vs-ideal interval gap
	// tolerated before the tracker re-arms with a corrected interval.
	ResyncThresholdMs int `mapstructure:"resyncThresholdMs"`
}
