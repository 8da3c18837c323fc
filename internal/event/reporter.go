package event

import "go.uber.org/zap"

// リスナーの失敗を受け取る約束
type Reporter interface {
	ListenerFailed(topic string, err error)
}

type ReporterFunc func(topic string, err error)

func (f ReporterFunc) ListenerFailed(topic string, err error) {
	f(topic, err)
}

// 失敗をzapでWarnログに出す
func LogReporter(logger *zap.Logger) Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return ReporterFunc(func(topic string, err error) {
		logger.Warn("cart listener failed", zap.String("topic", topic), zap.Error(err))
	})
}

// 複数のReporterに順に渡す
func MultiReporter(reporters ...Reporter) Reporter {
	return ReporterFunc(func(topic string, err error) {
		for _, r := range reporters {
			if r != nil {
				r.ListenerFailed(topic, err)
			}
		}
	})
}
