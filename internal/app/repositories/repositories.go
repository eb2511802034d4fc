package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	OrganizationRepository *OrganizationRepository
	AssociateRepository    *AssociateRepository
	CategoryRepository     *CategoryRepository
	CourseRepository       *CourseRepository
	LessonRepository       *LessonRepository
	QuestionRepository     *QuestionRepository
	AnswerRepository       *AnswerRepository
	NotificationRepository *NotificationRepository
	QuizRepository         *QuizRepository
	TopicRepository        *TopicRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
		OrganizationRepository: NewOrganizationRepository(db),
		AssociateRepository:    NewAssociateRepository(db),
		CategoryRepository:     NewCategoryRepository(db),
		CourseRepository:       NewCourseRepository(db),
		LessonRepository:       NewLessonRepository(db),
		QuestionRepository:     NewQuestionRepository(db),
		AnswerRepository:       NewAnswerRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		QuizRepository:         NewQuizRepository(db),
		TopicRepository:        NewTopicRepository(db),
	}
}
