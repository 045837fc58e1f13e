//go:build darwin && cgo

package pasteboard

// #cgo CFLAGS: -x objective-c
// #cgo LDFLAGS: -framework Cocoa
// #import <Cocoa/Cocoa.h>
// #include <stdlib.h>
// #include <string.h>
//
// NSInteger pbsnap_changeCount() {
//     return [[NSPasteboard generalPasteboard] changeCount];
// }
//
// // Returns the declared types joined by '\n', or NULL. Caller frees.
// char *pbsnap_types() {
//     @autoreleasepool {
//         NSArray<NSPasteboardType> *types = [[NSPasteboard generalPasteboard] types];
//         if (types == nil) {
//             return NULL;
//         }
//         NSString *joined = [types componentsJoinedByString:@"\n"];
//         const char *utf8 = [joined UTF8String];
//         return utf8 ? strdup(utf8) : NULL;
//     }
// }
//
// char *pbsnap_stringForType(const char *type) {
//     @autoreleasepool {
//         NSString *t = [NSString stringWithUTF8String:type];
//         NSString *s = [[NSPasteboard generalPasteboard] stringForType:t];
//         if (s == nil) {
//             return NULL;
//         }
//         const char *utf8 = [s UTF8String];
//         return utf8 ? strdup(utf8) : NULL;
//     }
// }
//
// // Copies the data payload for type into a malloc'd buffer. Caller frees.
// void *pbsnap_dataForType(const char *type, size_t *outLen) {
//     @autoreleasepool {
//         *outLen = 0;
//         NSString *t = [NSString stringWithUTF8String:type];
//         NSData *d = [[NSPasteboard generalPasteboard] dataForType:t];
//         if (d == nil || d.length == 0) {
//             return NULL;
//         }
//         void *buf = malloc(d.length);
//         if (buf == NULL) {
//             return NULL;
//         }
//         memcpy(buf, d.bytes, d.length);
//         *outLen = d.length;
//         return buf;
//     }
// }
//
// // Returns file paths joined by '\n', or NULL. Caller frees.
// char *pbsnap_fileURLs() {
//     @autoreleasepool {
//         NSPasteboard *pb = [NSPasteboard generalPasteboard];
//         NSArray *urls = [pb readObjectsForClasses:@[[NSURL class]] options:nil];
//         if (urls == nil || urls.count == 0) {
//             return NULL;
//         }
//         NSMutableArray<NSString *> *paths = [NSMutableArray arrayWithCapacity:urls.count];
//         for (NSURL *u in urls) {
//             if (u.path != nil) {
//                 [paths addObject:u.path];
//             }
//         }
//         if (paths.count == 0) {
//             return NULL;
//         }
//         const char *utf8 = [[paths componentsJoinedByString:@"\n"] UTF8String];
//         return utf8 ? strdup(utf8) : NULL;
//     }
// }
//
// char *pbsnap_frontmostBundleID() {
//     @autoreleasepool {
//         NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
//         if (app == nil || app.bundleIdentifier == nil) {
//             return NULL;
//         }
//         const char *utf8 = [app.bundleIdentifier UTF8String];
//         return utf8 ? strdup(utf8) : NULL;
//     }
// }
//
// char *pbsnap_frontmostName() {
//     @autoreleasepool {
//         NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
//         if (app == nil || app.localizedName == nil) {
//             return NULL;
//         }
//         const char *utf8 = [app.localizedName UTF8String];
//         return utf8 ? strdup(utf8) : NULL;
//     }
// }
import "C"

import (
	"strings"
	"unsafe"
)

type darwinPasteboard struct{}

// New returns the macOS general-pasteboard implementation.
func New() Pasteboard { return darwinPasteboard{} }

func (darwinPasteboard) Name() string { return "macOS NSPasteboard" }

func (darwinPasteboard) Types() []string {
	cs := C.pbsnap_types()
	if cs == nil {
		return nil
	}
	defer C.free(unsafe.Pointer(cs))
	return strings.Split(C.GoString(cs), "\n")
}

func (darwinPasteboard) StringForType(t string) (string, bool) {
	ct := C.CString(t)
	defer C.free(unsafe.Pointer(ct))
	cs := C.pbsnap_stringForType(ct)
	if cs == nil {
		return "", false
	}
	defer C.free(unsafe.Pointer(cs))
	return C.GoString(cs), true
}

func (darwinPasteboard) DataForType(t string) []byte {
	ct := C.CString(t)
	defer C.free(unsafe.Pointer(ct))
	var n C.size_t
	buf := C.pbsnap_dataForType(ct, &n)
	if buf == nil {
		return nil
	}
	defer C.free(buf)
	return C.GoBytes(buf, C.int(n))
}

func (darwinPasteboard) FileURLs() []string {
	cs := C.pbsnap_fileURLs()
	if cs == nil {
		return nil
	}
	defer C.free(unsafe.Pointer(cs))
	return strings.Split(C.GoString(cs), "\n")
}

func (darwinPasteboard) ChangeCount() int64 {
	return int64(C.pbsnap_changeCount())
}

func (darwinPasteboard) FrontmostApp() (SourceApp, bool) {
	var app SourceApp
	if cs := C.pbsnap_frontmostBundleID(); cs != nil {
		app.BundleID = C.GoString(cs)
		C.free(unsafe.Pointer(cs))
	}
	if cs := C.pbsnap_frontmostName(); cs != nil {
		app.Name = C.GoString(cs)
		C.free(unsafe.Pointer(cs))
	}
	return app, app.BundleID != "" || app.Name != ""
}
