package sidebar

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rebeliceyang/pgdesk/internal/models"
	"github.com/rebeliceyang/pgdesk/internal/store"
)

// StateChangedMsg carries one applied store action into the update loop
type StateChangedMsg struct {
	Change store.Change
}

// TableSelectedMsg is sent when a table of the tree is chosen
type TableSelectedMsg struct {
	Params models.WorkspaceParams
	Table  models.TableMeta
}

// tablesLoadedMsg answers the table request tagged with seq
type tablesLoadedMsg struct {
	seq   uint64
	nodes []*models.TreeNode
	err   error
}

// columnsLoadedMsg answers a lazy column load of a table node
type columnsLoadedMsg struct {
	node  *models.TreeNode
	nodes []*models.TreeNode
	err   error
}

// Bridge turns store notifications into StateChangedMsg values.
// Notifications are queued in order, so dispatching from inside Update
// never blocks on the program.
type Bridge struct {
	mu          sync.Mutex
	queue       []store.Change
	ready       chan struct{}
	unsubscribe func()
}

// NewBridge subscribes to st
func NewBridge(st *store.Store) *Bridge {
	b := &Bridge{ready: make(chan struct{}, 1)}
	b.unsubscribe = st.Subscribe(b.push)
	return b
}

func (b *Bridge) push(c store.Change) {
	b.mu.Lock()
	b.queue = append(b.queue, c)
	b.mu.Unlock()

	select {
	case b.ready <- struct{}{}:
	default:
	}
}

func (b *Bridge) pop() (store.Change, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.queue) == 0 {
		return store.Change{}, false
	}
	c := b.queue[0]
	b.queue = b.queue[1:]
	return c, true
}

// Wait returns a command that delivers the next change. The receiver of
// the StateChangedMsg issues Wait again to keep listening.
func (b *Bridge) Wait() tea.Cmd {
	return func() tea.Msg {
		for {
			if c, ok := b.pop(); ok {
				return StateChangedMsg{Change: c}
			}
			<-b.ready
		}
	}
}

// Close stops listening to the store
func (b *Bridge) Close() {
	b.unsubscribe()
}
