package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	StudyMemory() StudyMemoryRepository

	// Close releases the underlying storage.
	Close() error
}
