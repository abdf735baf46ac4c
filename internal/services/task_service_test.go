package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/study-planner-api/internal/constants"
	"github.com/yukikurage/study-planner-api/internal/models"
	"github.com/yukikurage/study-planner-api/internal/repository"
	"github.com/yukikurage/study-planner-api/internal/utils"
)

type TaskServiceTestSuite struct {
	suite.Suite
	svc   *TaskService
	alice *models.User
	bob   *models.User
}

func (suite *TaskServiceTestSuite) SetupTest() {
	db := newTestDB(suite.T())
	suite.svc = NewTaskService(repository.NewTaskRepository(db))

	auth := NewAuthService(repository.NewUserRepository(db))
	var err error
	suite.alice, err = auth.Register(RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	suite.Require().NoError(err)
	suite.bob, err = auth.Register(RegisterInput{Username: "bob", Email: "bob@example.com", Password: "secret1"})
	suite.Require().NoError(err)
}

func validTaskInput() CreateTaskInput {
	return CreateTaskInput{
		Name:           "Read Ch.3",
		Type:           "reading",
		Deadline:       "2025-07-01",
		EstimatedHours: 2,
		Difficulty:     3,
	}
}

func (suite *TaskServiceTestSuite) TestCreateTask_Scenario() {
	task, err := suite.svc.CreateTask(suite.alice.ID, validTaskInput())
	suite.Require().NoError(err)
	suite.Equal(suite.alice.ID, task.UserID)

	tasks, err := suite.svc.ListTasks(suite.alice.ID)
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 1)
	suite.Equal("Read Ch.3", tasks[0].Name)
	suite.False(tasks[0].Completed)
	suite.Nil(tasks[0].StartDate)
	suite.Equal("2025-07-01", utils.FormatDate(tasks[0].Deadline))

	completed, err := suite.svc.ToggleComplete(suite.alice.ID, task.ID)
	suite.Require().NoError(err)
	suite.True(completed)
}

func (suite *TaskServiceTestSuite) TestCreateTask_WithStartDate() {
	input := validTaskInput()
	input.StartDate = "2025-06-15"

	task, err := suite.svc.CreateTask(suite.alice.ID, input)
	suite.Require().NoError(err)

	found, err := suite.svc.GetTask(suite.alice.ID, task.ID)
	suite.Require().NoError(err)
	suite.Equal("2025-06-15", utils.FormatOptionalDate(found.StartDate))
}

func (suite *TaskServiceTestSuite) TestCreateTask_Validation() {
	tests := []struct {
		name   string
		mutate func(*CreateTaskInput)
		field  string
	}{
		{"missing name", func(in *CreateTaskInput) { in.Name = "  " }, "name"},
		{"missing type", func(in *CreateTaskInput) { in.Type = "" }, "type"},
		{"missing deadline", func(in *CreateTaskInput) { in.Deadline = "" }, "deadline"},
		{"bad deadline", func(in *CreateTaskInput) { in.Deadline = "07/01/2025" }, "deadline"},
		{"bad start date", func(in *CreateTaskInput) { in.StartDate = "2025-13-01" }, "start_date"},
		{"difficulty too low", func(in *CreateTaskInput) { in.Difficulty = 0 }, "difficulty"},
		{"difficulty too high", func(in *CreateTaskInput) { in.Difficulty = 6 }, "difficulty"},
		{"negative hours", func(in *CreateTaskInput) { in.EstimatedHours = -1 }, "estimated_hours"},
		{"too many hours", func(in *CreateTaskInput) { in.EstimatedHours = 1001 }, "estimated_hours"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			input := validTaskInput()
			tt.mutate(&input)

			_, err := suite.svc.CreateTask(suite.alice.ID, input)
			suite.Require().ErrorIs(err, ErrValidation)

			var validationErr *ValidationError
			suite.Require().ErrorAs(err, &validationErr)
			suite.Equal(tt.field, validationErr.Field)
		})
	}

	tasks, err := suite.svc.ListTasks(suite.alice.ID)
	suite.Require().NoError(err)
	suite.Empty(tasks)
}

func (suite *TaskServiceTestSuite) TestCreateTask_BoundaryValues() {
	input := validTaskInput()
	input.Difficulty = 1
	input.EstimatedHours = 0
	_, err := suite.svc.CreateTask(suite.alice.ID, input)
	suite.NoError(err)

	input.Difficulty = 5
	input.EstimatedHours = 1000
	_, err = suite.svc.CreateTask(suite.alice.ID, input)
	suite.NoError(err)
}

func (suite *TaskServiceTestSuite) TestCreateTask_LengthCountsCharacters() {
	input := validTaskInput()
	input.Name = strings.Repeat("漢", constants.MaxTaskNameLength)
	input.Type = strings.Repeat("読", constants.MaxTaskTypeLength)
	task, err := suite.svc.CreateTask(suite.alice.ID, input)
	suite.Require().NoError(err)
	suite.Equal(input.Name, task.Name)

	input.Name = strings.Repeat("漢", constants.MaxTaskNameLength+1)
	_, err = suite.svc.CreateTask(suite.alice.ID, input)
	var validationErr *ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Equal("name", validationErr.Field)
}

func (suite *TaskServiceTestSuite) TestToggleComplete_IsItsOwnInverse() {
	task, err := suite.svc.CreateTask(suite.alice.ID, validTaskInput())
	suite.Require().NoError(err)

	first, err := suite.svc.ToggleComplete(suite.alice.ID, task.ID)
	suite.Require().NoError(err)
	second, err := suite.svc.ToggleComplete(suite.alice.ID, task.ID)
	suite.Require().NoError(err)

	suite.True(first)
	suite.False(second)

	found, err := suite.svc.GetTask(suite.alice.ID, task.ID)
	suite.Require().NoError(err)
	suite.False(found.Completed)
}

func (suite *TaskServiceTestSuite) TestOtherUserCannotTouchTask() {
	task, err := suite.svc.CreateTask(suite.alice.ID, validTaskInput())
	suite.Require().NoError(err)

	bobsTasks, err := suite.svc.ListTasks(suite.bob.ID)
	suite.Require().NoError(err)
	suite.Empty(bobsTasks)

	_, err = suite.svc.GetTask(suite.bob.ID, task.ID)
	suite.ErrorIs(err, ErrTaskNotFound)

	_, err = suite.svc.UpdateTask(suite.bob.ID, task.ID, UpdateTaskInput{Name: strPtr("hijacked")})
	suite.ErrorIs(err, ErrTaskNotFound)

	_, err = suite.svc.ToggleComplete(suite.bob.ID, task.ID)
	suite.ErrorIs(err, ErrTaskNotFound)

	err = suite.svc.DeleteTask(suite.bob.ID, task.ID)
	suite.ErrorIs(err, ErrTaskNotFound)

	found, err := suite.svc.GetTask(suite.alice.ID, task.ID)
	suite.Require().NoError(err)
	suite.Equal("Read Ch.3", found.Name)
	suite.False(found.Completed)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_Partial() {
	input := validTaskInput()
	input.StartDate = "2025-06-01"
	task, err := suite.svc.CreateTask(suite.alice.ID, input)
	suite.Require().NoError(err)

	updated, err := suite.svc.UpdateTask(suite.alice.ID, task.ID, UpdateTaskInput{
		Name:       strPtr("Read Ch.4"),
		Difficulty: intPtr(5),
	})
	suite.Require().NoError(err)
	suite.Equal("Read Ch.4", updated.Name)
	suite.Equal(5, updated.Difficulty)

	found, err := suite.svc.GetTask(suite.alice.ID, task.ID)
	suite.Require().NoError(err)
	suite.Equal("Read Ch.4", found.Name)
	suite.Equal("reading", found.Type)
	suite.Equal(2, found.EstimatedHours)
	suite.Equal(5, found.Difficulty)
	suite.Equal("2025-06-01", utils.FormatOptionalDate(found.StartDate))
	suite.Equal("2025-07-01", utils.FormatDate(found.Deadline))
}

func (suite *TaskServiceTestSuite) TestUpdateTask_EmptyStartDateClears() {
	input := validTaskInput()
	input.StartDate = "2025-06-01"
	task, err := suite.svc.CreateTask(suite.alice.ID, input)
	suite.Require().NoError(err)

	_, err = suite.svc.UpdateTask(suite.alice.ID, task.ID, UpdateTaskInput{StartDate: strPtr("")})
	suite.Require().NoError(err)

	found, err := suite.svc.GetTask(suite.alice.ID, task.ID)
	suite.Require().NoError(err)
	suite.Nil(found.StartDate)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_InvalidFieldWritesNothing() {
	task, err := suite.svc.CreateTask(suite.alice.ID, validTaskInput())
	suite.Require().NoError(err)

	_, err = suite.svc.UpdateTask(suite.alice.ID, task.ID, UpdateTaskInput{
		Name:       strPtr("renamed"),
		Difficulty: intPtr(9),
	})
	suite.Require().ErrorIs(err, ErrValidation)

	found, err := suite.svc.GetTask(suite.alice.ID, task.ID)
	suite.Require().NoError(err)
	suite.Equal("Read Ch.3", found.Name)
	suite.Equal(3, found.Difficulty)
}

func (suite *TaskServiceTestSuite) TestDeleteTask() {
	task, err := suite.svc.CreateTask(suite.alice.ID, validTaskInput())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.svc.DeleteTask(suite.alice.ID, task.ID))

	_, err = suite.svc.GetTask(suite.alice.ID, task.ID)
	suite.ErrorIs(err, ErrTaskNotFound)

	suite.ErrorIs(suite.svc.DeleteTask(suite.alice.ID, task.ID), ErrTaskNotFound)
}

// vanishingTaskRepo deletes the task right before writing it back,
// as happens when a delete lands between loading and saving.
type vanishingTaskRepo struct {
	repository.TaskRepository
}

func (r *vanishingTaskRepo) Update(task *models.Task) error {
	if err := r.TaskRepository.Delete(task.ID, task.UserID); err != nil {
		return err
	}
	return r.TaskRepository.Update(task)
}

func (suite *TaskServiceTestSuite) TestUpdateAndToggle_TaskDeletedMeanwhile() {
	task, err := suite.svc.CreateTask(suite.alice.ID, validTaskInput())
	suite.Require().NoError(err)
	other, err := suite.svc.CreateTask(suite.alice.ID, validTaskInput())
	suite.Require().NoError(err)

	svc := NewTaskService(&vanishingTaskRepo{TaskRepository: suite.svc.taskRepo})

	_, err = svc.UpdateTask(suite.alice.ID, task.ID, UpdateTaskInput{Name: strPtr("renamed")})
	suite.ErrorIs(err, ErrTaskNotFound)

	_, err = svc.ToggleComplete(suite.alice.ID, other.ID)
	suite.ErrorIs(err, ErrTaskNotFound)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
