// This file is part of openMSX.
//
// openMSX is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// openMSX is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with openMSX.  If not, see <https://www.gnu.org/licenses/>.

package scheduler

import (
	"container/heap"
	"fmt"

	"github.com/jlautenbag/openMSX/hardware/emutime"
	"github.com/jlautenbag/openMSX/hardware/state"
)

// Schedulable is implemented by devices that set sync points.
type Schedulable interface {
	ExecuteUntil(t emutime.EmuTime, userData int)
}

type syncPoint struct {
	time     emutime.EmuTime
	seq      uint64
	device   Schedulable
	userData int
}

// syncQueue implements heap.Interface. ordered by time then by sequence.
type syncQueue []syncPoint

func (q syncQueue) Len() int {
	return len(q)
}

func (q syncQueue) Less(i, j int) bool {
	if q[i].time == q[j].time {
		return q[i].seq < q[j].seq
	}
	return q[i].time < q[j].time
}

func (q syncQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *syncQueue) Push(x any) {
	*q = append(*q, x.(syncPoint))
}

func (q *syncQueue) Pop() any {
	old := *q
	n := len(old)
	sp := old[n-1]
	old[n-1] = syncPoint{}
	*q = old[:n-1]
	return sp
}

// Scheduler is the queue of sync points for one machine.
type Scheduler struct {
	current emutime.EmuTime
	seq     uint64
	queue   syncQueue
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) String() string {
	return fmt.Sprintf("%v (%d pending)", s.current, len(s.queue))
}

// CurrentTime returns the time the scheduler has reached.
func (s *Scheduler) CurrentTime() emutime.EmuTime {
	return s.current
}

// SetSyncPoint asks for dev.ExecuteUntil(t, userData) to be called when the
// timeline reaches t. Panics if t is before the current time.
func (s *Scheduler) SetSyncPoint(t emutime.EmuTime, dev Schedulable, userData int) {
	if t < s.current {
		panic(fmt.Sprintf("scheduler: sync point at %v is before current time %v", t, s.current))
	}
	s.seq++
	heap.Push(&s.queue, syncPoint{
		time:     t,
		seq:      s.seq,
		device:   dev,
		userData: userData,
	})
}

// RemoveSyncPoint removes the earliest sync point for the device and user
// data. Returns false if no sync point was found.
func (s *Scheduler) RemoveSyncPoint(dev Schedulable, userData int) bool {
	idx := -1
	for i, sp := range s.queue {
		if sp.device == dev && sp.userData == userData {
			if idx == -1 || s.queue.Less(i, idx) {
				idx = i
			}
		}
	}
	if idx == -1 {
		return false
	}
	heap.Remove(&s.queue, idx)
	return true
}

// RemoveSyncPoints removes all sync points for the device.
func (s *Scheduler) RemoveSyncPoints(dev Schedulable) {
	q := s.queue[:0]
	for _, sp := range s.queue {
		if sp.device != dev {
			q = append(q, sp)
		}
	}
	for i := len(q); i < len(s.queue); i++ {
		s.queue[i] = syncPoint{}
	}
	s.queue = q
	heap.Init(&s.queue)
}

// PendingSyncPoint returns the time of the earliest sync point for the
// device and user data.
func (s *Scheduler) PendingSyncPoint(dev Schedulable, userData int) (emutime.EmuTime, bool) {
	t := emutime.Infinity
	found := false
	for _, sp := range s.queue {
		if sp.device == dev && sp.userData == userData && sp.time <= t {
			t = sp.time
			found = true
		}
	}
	return t, found
}

// Next returns the time of the earliest sync point. Returns
// emutime.Infinity if there are no sync points.
func (s *Scheduler) Next() emutime.EmuTime {
	if len(s.queue) == 0 {
		return emutime.Infinity
	}
	return s.queue[0].time
}

// Len returns the number of pending sync points.
func (s *Scheduler) Len() int {
	return len(s.queue)
}

// Schedule delivers every sync point up to and including limit. Sync points
// set by a callback are delivered in the same call if they are not after
// limit. The current time is limit on return.
func (s *Scheduler) Schedule(limit emutime.EmuTime) {
	for len(s.queue) > 0 && s.queue[0].time <= limit {
		sp := heap.Pop(&s.queue).(syncPoint)
		s.current = sp.time
		sp.device.ExecuteUntil(sp.time, sp.userData)
	}
	if limit > s.current {
		s.current = limit
	}
}

// Reset discards all sync points and sets the current time to t.
func (s *Scheduler) Reset(t emutime.EmuTime) {
	for i := range s.queue {
		s.queue[i] = syncPoint{}
	}
	s.queue = s.queue[:0]
	s.current = t
}

// Snapshot implements the state.Serialiser interface. Pending sync points
// are not saved. Devices set them again when they are restored.
func (s *Scheduler) Snapshot(a *state.Archive) {
	a.Put("currentTime", uint64(s.current))
}

// Restore implements the state.Serialiser interface. All pending sync points
// are discarded.
func (s *Scheduler) Restore(a *state.Archive) error {
	var t uint64
	if err := a.Get("currentTime", &t); err != nil {
		return err
	}
	s.Reset(emutime.EmuTime(t))
	return nil
}
