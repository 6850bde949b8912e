//go:build darwin && cgo

package keyboard

/*
#cgo LDFLAGS: -framework Carbon -framework CoreFoundation
#include <Carbon/Carbon.h>
#include <CoreFoundation/CoreFoundation.h>

// thaipad_layout_id copies the ID of the active keyboard layout, such as
// "com.apple.keylayout.Thai", into buf. It returns 0 when there is none.
static int thaipad_layout_id(char *buf, int n) {
    CFRunLoopRunInMode(kCFRunLoopDefaultMode, 0, false);

    TISInputSourceRef src = TISCopyCurrentKeyboardLayoutInputSource();
    if (src == NULL) {
        return 0;
    }
    CFStringRef id = TISGetInputSourceProperty(src, kTISPropertyInputSourceID);
    int ok = id != NULL && CFStringGetCString(id, buf, n, kCFStringEncodingUTF8);
    CFRelease(src);
    return ok;
}
*/
import "C"

import "strings"

// CurrentLayoutRaw reports the input source ID of the active layout. The
// event loop polls it, so the pending notifications are drained first.
func CurrentLayoutRaw() string {
	var buf [256]C.char
	if C.thaipad_layout_id(&buf[0], C.int(len(buf))) == 0 {
		return ""
	}
	return strings.TrimSpace(C.GoString(&buf[0]))
}
