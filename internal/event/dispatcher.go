// Package event はリスナーの登録と同期的な通知を行う。
// 1つのリスナーの失敗（errorまたはpanic）は報告されるだけで、他のリスナーへの通知は止めない。
package event

import (
	"errors"
	"fmt"
)

// リスナーがpanicしたとき、報告するerrorはこれをラップする。
var ErrListenerPanic = errors.New("listener panicked")

type Listener[E any] func(E) error

// 登録解除のハンドル
type Subscription interface {
	Unsubscribe()
}

type subscriber[E any] struct {
	id uint64
	fn Listener[E]
}

// Dispatcherは1つのトピックのリスナー一覧。並行利用は想定しない。
type Dispatcher[E any] struct {
	topic    string
	reporter Reporter
	nextID   uint64
	subs     []subscriber[E]
}

// reporterがnilなら失敗は捨てる
func NewDispatcher[E any](topic string, reporter Reporter) *Dispatcher[E] {
	if reporter == nil {
		reporter = ReporterFunc(func(string, error) {})
	}
	return &Dispatcher[E]{topic: topic, reporter: reporter}
}

func (d *Dispatcher[E]) Topic() string {
	return d.topic
}

func (d *Dispatcher[E]) Len() int {
	return len(d.subs)
}

// 登録順に呼ばれる
func (d *Dispatcher[E]) Subscribe(fn Listener[E]) Subscription {
	d.nextID++
	id := d.nextID
	d.subs = append(d.subs, subscriber[E]{id: id, fn: fn})
	return &subscription[E]{d: d, id: id}
}

// 登録順にすべてのリスナーを呼び、失敗した数を返す。
// 通知中の登録・解除は次回のFireから反映される。
func (d *Dispatcher[E]) Fire(ev E) int {
	subs := make([]subscriber[E], len(d.subs))
	copy(subs, d.subs)

	failed := 0
	for _, s := range subs {
		if err := d.call(s.fn, ev); err != nil {
			failed++
			d.reporter.ListenerFailed(d.topic, err)
		}
	}
	return failed
}

func (d *Dispatcher[E]) call(fn Listener[E], ev E) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrListenerPanic, r)
		}
	}()
	return fn(ev)
}

func (d *Dispatcher[E]) remove(id uint64) {
	for i, s := range d.subs {
		if s.id == id {
			d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
			return
		}
	}
}

type subscription[E any] struct {
	d  *Dispatcher[E]
	id uint64
}

// 2回目以降は何もしない
func (s *subscription[E]) Unsubscribe() {
	if s.d == nil {
		return
	}
	s.d.remove(s.id)
	s.d = nil
}
