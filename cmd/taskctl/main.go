package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/taskboard/client/domain"
	"github.com/taskboard/client/internal/config"
	"github.com/taskboard/client/internal/services/lifecycle"
	"github.com/taskboard/client/pkg/logger"
	"github.com/taskboard/client/query"
	"github.com/taskboard/client/repository"
	"github.com/taskboard/client/repository/boltdb"
	"github.com/taskboard/client/repository/rest"
	"github.com/taskboard/client/store"
	authStore "github.com/taskboard/client/store/auth"
	projectStore "github.com/taskboard/client/store/project"
	taskStore "github.com/taskboard/client/store/task"
	teamStore "github.com/taskboard/client/store/team"
)

const usage = `taskctl <command> [flags]

commands:
  login          -email -password
  signup         -name -email -password
  whoami
  logout
  projects       [-page N]
  project-create -name [-desc]
  project-delete -project
  add-member     -project -email
  tasks          [-project ID] [-search S] [-status S] [-assignee A] [-due overdue|today|this-week|none]
  task-create    -project -title [-desc] [-assignee] [-due YYYY-MM-DD] [-status]
  task-status    -task -status
  task-delete    -task
  move           -task -from -from-index -to -to-index
  team
  remove-member  -member
  comments       -task ID
  comment-add    -task -text
  stats          [-project ID]
`

type app struct {
	auth     *authStore.Store
	projects *projectStore.Store
	tasks    *taskStore.Store
	board    *taskStore.Board
	team     *teamStore.Store
	comments repository.CommentAPI
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}

	manager := lifecycle.New(5*time.Second, zapLogger)
	manager.Register("logger", func(context.Context) error {
		_ = zapLogger.Sync()
		return nil
	})

	sessions, err := boltdb.Open(cfg.State.Path)
	if err != nil {
		zapLogger.Fatal("failed to open session store", zap.Error(err))
	}
	manager.Register("session_store", func(context.Context) error {
		return sessions.Close()
	})

	client := rest.New(rest.Config{
		BaseURL:         cfg.API.BaseURL,
		ReadTimeout:     cfg.API.ReadTimeout,
		MutationTimeout: cfg.API.MutationTimeout,
	}, zapLogger)

	auth := authStore.New(rest.NewAuthAPI(client), sessions, zapLogger)
	projects := projectStore.New(rest.NewProjectAPI(client), auth, zapLogger)
	tasks := taskStore.New(rest.NewTaskAPI(client), auth, zapLogger)
	board := taskStore.NewBoard(tasks, store.NewLogNotifier(zapLogger), zapLogger)
	team := teamStore.New(rest.NewTeamAPI(client), auth, zapLogger)

	a := &app{
		auth:     auth,
		projects: projects,
		tasks:    tasks,
		board:    board,
		team:     team,
		comments: rest.NewCommentAPI(client),
	}

	ctx := context.Background()
	runErr := a.run(ctx, os.Args[1], os.Args[2:])

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("shutdown error", zap.Error(err))
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, domain.AsDomainError(runErr).Message)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "signup":
		return a.signup(ctx, args)
	case "whoami":
		return a.whoami(ctx)
	case "logout":
		return a.auth.Logout()
	case "projects":
		return a.listProjects(ctx, args)
	case "project-create":
		return a.createProject(ctx, args)
	case "project-delete":
		return a.deleteProject(ctx, args)
	case "add-member":
		return a.addMember(ctx, args)
	case "tasks":
		return a.listTasks(ctx, args)
	case "task-create":
		return a.createTask(ctx, args)
	case "task-status":
		return a.setTaskStatus(ctx, args)
	case "task-delete":
		return a.deleteTask(ctx, args)
	case "move":
		return a.move(ctx, args)
	case "team":
		return a.listTeam(ctx)
	case "remove-member":
		return a.removeMember(ctx, args)
	case "comments":
		return a.listComments(ctx, args)
	case "comment-add":
		return a.addComment(ctx, args)
	case "stats":
		return a.stats(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	session, err := a.auth.Login(ctx, repository.Credentials{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s <%s>\n", session.User.Name, session.User.Email)
	return nil
}

func (a *app) signup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	session, err := a.auth.Signup(ctx, repository.Profile{Name: *name, Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Printf("account created for %s <%s>\n", session.User.Name, session.User.Email)
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	user, err := a.auth.FetchUserInfo(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> role=%s\n", user.Name, user.Email, user.Role)
	return nil
}

func (a *app) listProjects(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("projects", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	_ = fs.Parse(args)

	if err := a.projects.Fetch(ctx, *page); err != nil {
		return err
	}
	snap := a.projects.Snapshot()
	for _, p := range snap.Projects {
		fmt.Printf("%s  %-30s tasks=%d members=%d\n", p.ID, p.Name, p.TaskCount, len(p.Members))
	}
	fmt.Printf("page %d/%d (%d total)\n", snap.Pagination.Page, snap.Pagination.Pages, snap.Pagination.Total)
	return nil
}

func (a *app) createProject(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("project-create", flag.ExitOnError)
	name := fs.String("name", "", "project name")
	desc := fs.String("desc", "", "project description")
	_ = fs.Parse(args)

	created, err := a.projects.Create(ctx, repository.ProjectPayload{Name: *name, Description: *desc})
	if err != nil {
		return err
	}
	fmt.Printf("created project %s (%s)\n", created.Name, created.ID)
	return nil
}

func (a *app) deleteProject(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("project-delete", flag.ExitOnError)
	projectID := fs.String("project", "", "project id")
	_ = fs.Parse(args)

	if err := a.projects.Delete(ctx, *projectID); err != nil {
		return err
	}
	fmt.Printf("project %s deleted\n", *projectID)
	return nil
}

func (a *app) addMember(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-member", flag.ExitOnError)
	projectID := fs.String("project", "", "project id")
	email := fs.String("email", "", "member email")
	_ = fs.Parse(args)

	updated, err := a.projects.AddMember(ctx, *projectID, *email)
	if err != nil {
		return err
	}
	fmt.Printf("project %s now has %d members\n", updated.Name, len(updated.Members))
	return nil
}

func (a *app) listTasks(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasks", flag.ExitOnError)
	projectID := fs.String("project", "", "project id (all projects when empty)")
	search := fs.String("search", "", "title/description substring")
	status := fs.String("status", "", "status filter")
	assignee := fs.String("assignee", "", "assignee name, or 'unassigned'")
	due := fs.String("due", "", "due bucket: overdue|today|this-week|none")
	_ = fs.Parse(args)

	var err error
	if *projectID != "" {
		err = a.tasks.FetchByProject(ctx, *projectID)
	} else {
		err = a.tasks.FetchAll(ctx)
	}
	if err != nil {
		return err
	}

	criteria := query.Criteria{
		Search:   *search,
		Assignee: *assignee,
		Due:      query.DueBucket(*due),
	}
	if *status != "" {
		criteria.Status = domain.NormalizeStatus(*status)
	}

	list := query.Filter(a.tasks.Tasks(), criteria)
	domain.SortBoard(list)
	for _, t := range list {
		assignName := "-"
		if t.Assignee != nil {
			assignName = t.Assignee.Name
		}
		fmt.Printf("%s  [%-11s #%d]  %-30s %s\n", t.ID, t.Status, t.Order, t.Title, assignName)
	}
	return nil
}

func (a *app) createTask(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("task-create", flag.ExitOnError)
	projectID := fs.String("project", "", "project id")
	title := fs.String("title", "", "task title")
	desc := fs.String("desc", "", "task description")
	assignee := fs.String("assignee", "", "assignee member id")
	due := fs.String("due", "", "due date (YYYY-MM-DD)")
	status := fs.String("status", string(domain.StatusToDo), "initial status")
	_ = fs.Parse(args)

	input := taskStore.NewTask{
		ProjectID:   *projectID,
		Title:       *title,
		Description: *desc,
		Assignee:    *assignee,
		Status:      *status,
	}
	if *due != "" {
		parsed, err := time.ParseInLocation("2006-01-02", *due, time.Local)
		if err != nil {
			return domain.WrapError(domain.ErrCodeInvalid, "invalid due date, expected YYYY-MM-DD", err)
		}
		input.DueDate = &parsed
	}

	created, err := a.tasks.Create(ctx, input)
	if err != nil {
		return err
	}
	fmt.Printf("created task %s (%s) in %s\n", created.Title, created.ID, created.ProjectID)
	return nil
}

func (a *app) setTaskStatus(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("task-status", flag.ExitOnError)
	taskID := fs.String("task", "", "task id")
	status := fs.String("status", "", "new status")
	_ = fs.Parse(args)

	updated, err := a.tasks.UpdateStatus(ctx, *taskID, domain.NormalizeStatus(*status))
	if err != nil {
		return err
	}
	fmt.Printf("task %s is now %s\n", updated.Title, updated.Status)
	return nil
}

func (a *app) deleteTask(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("task-delete", flag.ExitOnError)
	taskID := fs.String("task", "", "task id")
	_ = fs.Parse(args)

	if err := a.tasks.Delete(ctx, *taskID); err != nil {
		return err
	}
	fmt.Printf("task %s deleted\n", *taskID)
	return nil
}

func (a *app) move(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("move", flag.ExitOnError)
	taskID := fs.String("task", "", "task id")
	projectID := fs.String("project", "", "project id")
	from := fs.String("from", "", "source column")
	fromIndex := fs.Int("from-index", 0, "source position")
	to := fs.String("to", "", "destination column")
	toIndex := fs.Int("to-index", 0, "destination position")
	_ = fs.Parse(args)

	if *projectID != "" {
		if err := a.tasks.FetchByProject(ctx, *projectID); err != nil {
			return err
		}
	}

	return a.board.Move(ctx, taskStore.Drop{
		TaskID:      *taskID,
		Source:      domain.NormalizeStatus(*from),
		SourceIndex: *fromIndex,
		Dest: &taskStore.DropTarget{
			Status: domain.NormalizeStatus(*to),
			Index:  *toIndex,
		},
	})
}

func (a *app) listTeam(ctx context.Context) error {
	if err := a.team.Fetch(ctx); err != nil {
		return err
	}
	actor := a.auth.Session()
	for _, m := range a.team.Snapshot().Members {
		removable := ""
		if actor != nil && domain.CanRemove(&actor.User, m) {
			removable = " (removable)"
		}
		fmt.Printf("%s  %-20s %-30s %s%s\n", m.ID, m.Name, m.Email, m.Role, removable)
	}
	return nil
}

func (a *app) removeMember(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("remove-member", flag.ExitOnError)
	memberID := fs.String("member", "", "member id")
	_ = fs.Parse(args)

	if err := a.team.Remove(ctx, *memberID); err != nil {
		return err
	}
	fmt.Printf("member %s removed\n", *memberID)
	return nil
}

func (a *app) listComments(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("comments", flag.ExitOnError)
	taskID := fs.String("task", "", "task id")
	_ = fs.Parse(args)

	token, err := a.auth.Token()
	if err != nil {
		return err
	}
	list, err := a.comments.List(ctx, token, *taskID)
	if err != nil {
		return err
	}
	for _, c := range list {
		fmt.Printf("%s  %s: %s\n", c.CreatedAt.Format("2006-01-02 15:04"), c.UserID, c.Content)
	}
	return nil
}

func (a *app) addComment(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("comment-add", flag.ExitOnError)
	taskID := fs.String("task", "", "task id")
	text := fs.String("text", "", "comment text")
	_ = fs.Parse(args)

	token, err := a.auth.Token()
	if err != nil {
		return err
	}
	created, err := a.comments.Create(ctx, token, *taskID, *text)
	if err != nil {
		return err
	}
	fmt.Printf("comment %s added\n", created.ID)
	return nil
}

func (a *app) stats(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	projectID := fs.String("project", "", "project id (all projects when empty)")
	_ = fs.Parse(args)

	var err error
	if *projectID != "" {
		err = a.tasks.FetchByProject(ctx, *projectID)
	} else {
		err = a.tasks.FetchAll(ctx)
	}
	if err != nil {
		return err
	}

	stats := query.Aggregate(a.tasks.Tasks())
	fmt.Printf("total=%d todo=%d in-progress=%d done=%d completion=%.0f%%\n",
		stats.Total, stats.ToDo, stats.InProgress, stats.Completed, stats.CompletionRate*100)
	for pid, count := range query.CountByProject(a.tasks.Tasks()) {
		fmt.Printf("  %s: %d tasks\n", pid, count)
	}
	return nil
}
