package sqlite

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

type userModel struct {
	ID             string    `gorm:"primaryKey;size:36"`
	Username       string    `gorm:"size:150;not null;uniqueIndex"`
	Email          string    `gorm:"size:254;not null;default:''"`
	FirstName      string    `gorm:"size:150;not null;default:''"`
	HashedPassword string    `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (userModel) TableName() string {
	return "users"
}

type taskModel struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	UserID      *string    `gorm:"size:36;index:idx_tasks_user_id_status,priority:1"`
	User        *userModel `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	Title       string     `gorm:"size:300;not null"`
	Description string     `gorm:"not null;default:''"`
	Priority    int        `gorm:"not null;default:1"`
	Status      string     `gorm:"size:20;not null;index:idx_tasks_user_id_status,priority:2"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

func (taskModel) TableName() string {
	return "tasks"
}

func userToModel(u *domain.User) *userModel {
	return &userModel{
		ID:             u.ID.String(),
		Username:       u.Username,
		Email:          u.Email,
		FirstName:      u.FirstName,
		HashedPassword: u.HashedPassword,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (m *userModel) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:             id,
		Username:       m.Username,
		Email:          m.Email,
		FirstName:      m.FirstName,
		HashedPassword: m.HashedPassword,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}, nil
}

func taskToModel(t *domain.Task) *taskModel {
	m := &taskModel{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status.String(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.UserID.Valid {
		owner := t.UserID.UUID.String()
		m.UserID = &owner
	}
	return m
}

func (m *taskModel) toDomain() (*domain.Task, error) {
	status, err := domain.ParseTaskStatus(m.Status)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Priority:    m.Priority,
		Status:      status,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
	if m.UserID != nil {
		owner, err := uuid.Parse(*m.UserID)
		if err != nil {
			return nil, err
		}
		task.UserID = uuid.NullUUID{UUID: owner, Valid: true}
	}
	return task, nil
}
