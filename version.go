package icfp

const (
	Version   = "0.3.1"
	BuildDate = "2024-06-30"
)
