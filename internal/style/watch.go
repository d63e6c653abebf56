package style

import (
	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// WatchBase16 watches a base16 YAML file for changes and calls onChange
// with the newly-loaded Config each time it's rewritten, so --style
// base16:<path> can be edited live without restarting the renderer. Load
// errors while watching (a mid-write partial file, a YAML typo) are
// silently skipped - the previous Config stays in effect until a valid
// reload succeeds.
func WatchBase16(path string, onChange func(Config)) (*fsnotify.Watcher, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := w.Add(expanded); err != nil {
		w.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if cfg, err := LoadBase16(path); err == nil {
					onChange(cfg)
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return w, nil
}
