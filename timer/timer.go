// timer/timer.go
package timer

import (
	"container/heap"
	"sync"
	"time"
)

// ExpiryTask 到期任务，每个 key 最多一个
type ExpiryTask struct {
	Key      int
	Deadline time.Time
	Callback func(key int)
	index    int
	canceled bool
}

type taskQueue []*ExpiryTask

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	return q[i].Deadline.Before(q[j].Deadline)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x interface{}) {
	n := len(*q)
	task := x.(*ExpiryTask)
	task.index = n
	*q = append(*q, task)
}

func (q *taskQueue) Pop() interface{} {
	old := *q
	n := len(old)
	task := old[n-1]
	task.index = -1
	*q = old[0 : n-1]
	return task
}

// ExpiryManager schedules one revocable deadline callback per integer key.
// Deadlines are checked on a coarse tick, so firing precision is bounded by
// the configured resolution.
type ExpiryManager struct {
	queue      taskQueue
	byKey      map[int]*ExpiryTask
	mutex      sync.Mutex
	resolution time.Duration
	closeChan  chan struct{}
	closeOnce  sync.Once
}

// NewExpiryManager starts a manager whose tick interval is resolution.
func NewExpiryManager(resolution time.Duration) *ExpiryManager {
	manager := &ExpiryManager{
		queue:      make(taskQueue, 0),
		byKey:      make(map[int]*ExpiryTask),
		resolution: resolution,
		closeChan:  make(chan struct{}),
	}
	heap.Init(&manager.queue)
	go manager.process()
	return manager
}

// Schedule arms (or re-arms) the deadline for key. A previous task for the
// same key is replaced.
func (m *ExpiryManager) Schedule(key int, delay time.Duration, callback func(key int)) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.removeLocked(key)

	task := &ExpiryTask{
		Key:      key,
		Deadline: time.Now().Add(delay),
		Callback: callback,
	}
	m.byKey[key] = task
	heap.Push(&m.queue, task)
}

// Cancel disarms the deadline for key, if any.
func (m *ExpiryManager) Cancel(key int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.removeLocked(key)
}

func (m *ExpiryManager) removeLocked(key int) {
	if task, exists := m.byKey[key]; exists {
		task.canceled = true
		heap.Remove(&m.queue, task.index)
		delete(m.byKey, key)
	}
}

// Stop shuts down the tick loop. Pending tasks never fire.
func (m *ExpiryManager) Stop() {
	m.closeOnce.Do(func() {
		close(m.closeChan)
	})
}

func (m *ExpiryManager) process() {
	ticker := time.NewTicker(m.resolution)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.fireDue(time.Now())
		case <-m.closeChan:
			return
		}
	}
}

func (m *ExpiryManager) fireDue(now time.Time) {
	m.mutex.Lock()

	var due []*ExpiryTask
	for m.queue.Len() > 0 {
		task := m.queue[0]
		if task.Deadline.After(now) {
			break
		}
		heap.Pop(&m.queue)
		delete(m.byKey, task.Key)
		due = append(due, task)
	}
	m.mutex.Unlock()

	// 回调在锁外执行，允许回调里再次 Schedule
	for _, task := range due {
		if !task.canceled {
			task.Callback(task.Key)
		}
	}
}
