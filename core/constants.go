package core

const (
	// Per-checkpoint header file declaring the numeric byte order.
	PlatinfoFileName = "platinfo"

	// Fixed two-level directory holding the kfd dump files of a
	// checkpoint: <checkpoint>/file/kfd/<n>.
	FileDirName = "file"
	KfdDirName  = "kfd"
)
