package lock

// LockFileName is created inside the parent directory for the duration
// of a consolidation run. It never collides with checkpoint contents
// because checkpoints are subdirectories, not dotfiles.
const LockFileName = ".kfdopt.lock"
