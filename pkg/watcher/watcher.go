package watcher

import (
	"context"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// Debouncer 把短时间内的多次触发合并为一次执行
type Debouncer struct {
	delay  time.Duration
	fn     func()
	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// NewDebouncer 创建一个新的 Debouncer，最后一次 Trigger 之后 delay 执行 fn
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger 重置计时器
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

// Stop 取消尚未执行的任务
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
	}
}

// FileWatcher 监听词库数据库文件的变化并触发重新加载
type FileWatcher struct {
	path      string
	debouncer *Debouncer
	logger    *log.Logger
}

// New 创建监听器，path 为数据库文件路径，reload 在变化平息 delay 后执行
func New(path string, delay time.Duration, reload func() error, logger *log.Logger) *FileWatcher {
	w := &FileWatcher{path: path, logger: logger}
	w.debouncer = NewDebouncer(delay, func() {
		logger.Printf("-> Reloading dictionary after changes to %s", path)
		if err := reload(); err != nil {
			logger.Printf("ERROR: Dictionary reload failed: %v", err)
		}
	})
	return w
}

// Run 监听数据库所在目录直到 ctx 结束
func (w *FileWatcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer fw.Close()
	defer w.debouncer.Stop()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to watch directory %s", dir)
	}
	w.logger.Printf("Monitoring %s for dictionary changes...", w.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Printf("Watcher event: %s, on %s", event.Op.String(), event.Name)
			w.debouncer.Trigger()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Printf("ERROR: Watcher error: %v", err)
		}
	}
}

// relevant 只关注数据库文件本身及其 -journal / -wal 文件的写入、创建、删除和重命名
func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(w.path)
	name := filepath.Base(event.Name)
	return name == base || strings.HasPrefix(name, base+"-")
}
