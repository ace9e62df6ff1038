package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Cycles      *CycleRepository
	Annotations *PartitionRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Cycles:      NewCycleRepository(database),
		Annotations: NewPartitionRepository(database),
	}
}
