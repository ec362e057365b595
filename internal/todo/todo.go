// Package todo loads the todo lists the editor offers as slot descriptions.
package todo

import (
	"bufio"
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/javiermolinar/daybox/internal/logger"
)

// Status of a todo.
type Status int

const (
	Uncompleted Status = iota
	Completed
	Suspended
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "completed"
	case Suspended:
		return "suspended"
	default:
		return "uncompleted"
	}
}

// Todo is an item that can be scheduled into a slot. Lower priority values come first.
type Todo struct {
	Priority    float64
	Description string
	Status      Status
}

// Curse file layout: "(P) description", where a '>' in column 3 marks an
// entry whose description starts further along the line.
const (
	curseFileName        = "todo"
	cursePriorityCol     = 1
	curseMarkerCol       = 3
	curseDescCol         = 4
	curseMarkedDescCol   = 45
	curseDefaultPriority = 5
)

// LoadCurse reads a curse todo file. A directory path is read as its "todo" file.
// Lines without a priority digit are skipped.
func LoadCurse(path string) ([]Todo, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, curseFileName)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening curse todos: %w", err)
	}
	defer func() { _ = f.Close() }()

	var todos []Todo
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		t, ok := parseCurseLine(sc.Text())
		if !ok {
			logger.Debug("skipping curse line", "path", path, "line", lineNo)
			continue
		}
		todos = append(todos, t)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading curse todos: %w", err)
	}
	return todos, nil
}

func parseCurseLine(line string) (Todo, bool) {
	if len(line) <= curseDescCol {
		return Todo{}, false
	}
	c := line[cursePriorityCol]
	if c < '0' || c > '9' {
		return Todo{}, false
	}
	priority := float64(c - '0')
	if priority == 0 {
		priority = curseDefaultPriority
	}

	desc := line[curseDescCol:]
	if line[curseMarkerCol] == '>' {
		desc = ""
		if len(line) > curseMarkedDescCol {
			desc = line[curseMarkedDescCol:]
		}
	}
	return Todo{
		Priority:    priority,
		Description: strings.TrimRight(desc, " \t\r"),
		Status:      Uncompleted,
	}, true
}

// LoadProjects reads a projects document of the form
// {"projects": [{"priority": 2, "desc": "..."}]}.
func LoadProjects(path string) ([]Todo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading projects: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parsing projects %s: invalid JSON", path)
	}

	var todos []Todo
	gjson.GetBytes(data, "projects").ForEach(func(_, project gjson.Result) bool {
		desc := project.Get("desc")
		if !desc.Exists() {
			return true
		}
		todos = append(todos, Todo{
			Priority:    project.Get("priority").Float(),
			Description: desc.String(),
			Status:      Uncompleted,
		})
		return true
	})
	return todos, nil
}

// Sources names the files Load reads. Empty paths are skipped.
type Sources struct {
	CursePath   string
	ProjectPath string
}

// Load reads every configured source and returns the todos ordered by
// priority. Todos with equal priority keep their source order.
// A source that fails to load is logged and skipped.
func Load(src Sources) []Todo {
	var all []Todo
	if src.CursePath != "" {
		todos, err := LoadCurse(src.CursePath)
		if err != nil {
			logger.Warn("loading curse todos", "err", err)
		}
		all = append(all, todos...)
	}
	if src.ProjectPath != "" {
		todos, err := LoadProjects(src.ProjectPath)
		if err != nil {
			logger.Warn("loading projects", "err", err)
		}
		all = append(all, todos...)
	}
	Sort(all)
	return all
}

// Sort orders todos by priority, keeping the relative order of ties.
func Sort(todos []Todo) {
	slices.SortStableFunc(todos, func(a, b Todo) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
}

// Cycle returns the index delta steps away from i in a list of n todos,
// wrapping at both ends. It returns -1 for an empty list.
func Cycle(n, i, delta int) int {
	if n == 0 {
		return -1
	}
	return ((i+delta)%n + n) % n
}
