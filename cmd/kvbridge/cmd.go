package main

import (
	"flag"

	klog "k8s.io/klog/v2"
)

// quietKlog limits klog noise from k8s client-go so long-running commands
// like `sync run` keep a clean terminal.
func quietKlog() {
	klog.InitFlags(nil)
	_ = flag.Set("stderrthreshold", "FATAL")
	_ = flag.Set("v", "0")
	_ = flag.Set("logtostderr", "false")
	_ = flag.Set("alsologtostderr", "false")
}
