//go:build windows

package preview

import (
	"errors"
	"unsafe"

	"golang.org/x/sys/windows"
)

// IconExtractionSupported reports whether this build can read application
// icons from executables.
const IconExtractionSupported = true

var (
	shell32 = windows.NewLazySystemDLL("shell32.dll")
	user32  = windows.NewLazySystemDLL("user32.dll")
	gdi32   = windows.NewLazySystemDLL("gdi32.dll")

	procExtractIconExW = shell32.NewProc("ExtractIconExW")
	procGetIconInfo    = user32.NewProc("GetIconInfo")
	procDestroyIcon    = user32.NewProc("DestroyIcon")
	procGetObjectW     = gdi32.NewProc("GetObjectW")
	procGetBitmapBits  = gdi32.NewProc("GetBitmapBits")
	procDeleteObject   = gdi32.NewProc("DeleteObject")
)

var errNoIcon = errors.New("no icon found")

type iconInfo struct {
	fIcon    int32
	xHotspot uint32
	yHotspot uint32
	hbmMask  windows.Handle
	hbmColor windows.Handle
}

type bitmapHeader struct {
	bmType       int32
	bmWidth      int32
	bmHeight     int32
	bmWidthBytes int32
	bmPlanes     uint16
	bmBitsPixel  uint16
	bmBits       uintptr
}

type nativeIcon struct {
	icon  windows.Handle
	color windows.Handle
	mask  windows.Handle
}

func extractIcon(path string) (iconGuard, error) {
	if err := procExtractIconExW.Find(); err != nil {
		return nil, ErrDecoderUnavailable
	}
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, err
	}
	var large, small windows.Handle
	procExtractIconExW.Call(
		uintptr(unsafe.Pointer(name)),
		0,
		uintptr(unsafe.Pointer(&large)),
		uintptr(unsafe.Pointer(&small)),
		1,
	)
	switch {
	case large != 0:
		if small != 0 {
			destroyIcon(small)
		}
		return &nativeIcon{icon: large}, nil
	case small != 0:
		return &nativeIcon{icon: small}, nil
	default:
		return nil, errNoIcon
	}
}

func (n *nativeIcon) Pixels() (int, int, []byte, error) {
	var info iconInfo
	if ok, _, _ := procGetIconInfo.Call(uintptr(n.icon), uintptr(unsafe.Pointer(&info))); ok == 0 {
		return 0, 0, nil, errIconBits
	}
	n.color = info.hbmColor
	n.mask = info.hbmMask
	if n.color == 0 {
		return 0, 0, nil, errIconBits
	}

	var header bitmapHeader
	if got, _, _ := procGetObjectW.Call(uintptr(n.color), unsafe.Sizeof(header), uintptr(unsafe.Pointer(&header))); got == 0 {
		return 0, 0, nil, errIconBits
	}
	width, height := int(header.bmWidth), int(header.bmHeight)
	if width <= 0 || height <= 0 {
		return 0, 0, nil, errIconBits
	}
	buf := make([]byte, width*height*4)
	copied, _, _ := procGetBitmapBits.Call(uintptr(n.color), uintptr(len(buf)), uintptr(unsafe.Pointer(&buf[0])))
	if int(copied) < len(buf) {
		return 0, 0, nil, errIconBits
	}
	return width, height, buf, nil
}

func (n *nativeIcon) Release() {
	if n.color != 0 {
		procDeleteObject.Call(uintptr(n.color))
		n.color = 0
	}
	if n.mask != 0 {
		procDeleteObject.Call(uintptr(n.mask))
		n.mask = 0
	}
	if n.icon != 0 {
		destroyIcon(n.icon)
		n.icon = 0
	}
}

func destroyIcon(h windows.Handle) {
	procDestroyIcon.Call(uintptr(h))
}
