package engine

import (
	"github.com/fsnotify/fsnotify"

	"github.com/lumine-engine/lumine/engine/core"
)

// configWatcher watches the loaded config file while the engine runs.
// Startup configuration is immutable once applied, so changes are only
// reported; a restart picks them up.
type configWatcher struct {
	fsnotify *fsnotify.Watcher
	done     chan struct{}
}

func newConfigWatcher(path string) (*configWatcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatch.Add(path); err != nil {
		fsWatch.Close()
		return nil, err
	}

	cw := &configWatcher{
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}
	go cw.start()
	return cw, nil
}

func (cw *configWatcher) start() {
	for {
		select {
		case event, ok := <-cw.fsnotify.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
				core.LogWarn("config file %s changed; restart to apply", event.Name)
			}
		case err, ok := <-cw.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("config watcher: %s", err)
		case <-cw.done:
			return
		}
	}
}

func (cw *configWatcher) Close() error {
	close(cw.done)
	return cw.fsnotify.Close()
}
