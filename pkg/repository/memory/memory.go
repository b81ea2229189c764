package memory

import (
	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory keeps everything in process memory. Data is lost on exit.
type Memory struct {
	studyMemory *studyMemoryRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		studyMemory: newStudyMemoryRepository(),
	}
}

func (m *Memory) StudyMemory() interfaces.StudyMemoryRepository {
	return m.studyMemory
}

func (m *Memory) Close() error {
	return nil
}
