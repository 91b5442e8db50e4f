// codes.go — error domains shipped with the core.
//
// FileError and ConvertError are the two domains the native library itself
// raises from the calls this module makes (file access, locale conversion),
// so every binding needs them. Other bindings declare their own enumerations
// the same way:
//
//	var myErrorQuark = quark.NewStatic("my-error-quark")
//
//	type MyError int32
//
//	func (MyError) Domain() quark.Quark { return myErrorQuark.Get() }
//	func (c MyError) Code() int         { return int(c) }
//	func (c MyError) Known() bool       { return c >= 0 && c <= MyErrorLast }
//
// Values are the native constants; keep the tables below in native order.
package gerror

import (
	"fmt"
	"syscall"

	"github.com/xgx-io/xgx-gerror/native"
	"github.com/xgx-io/xgx-gerror/quark"
)

var (
	fileErrorQuark    = quark.NewStatic("g-file-error-quark")
	convertErrorQuark = quark.NewStatic(native.ConvertErrorDomain)
)

// FileError is the GFileError enumeration.
type FileError int32

const (
	FileErrorExist FileError = iota
	FileErrorIsDir
	FileErrorAcces
	FileErrorNameTooLong
	FileErrorNoent
	FileErrorNotDir
	FileErrorNxio
	FileErrorNodev
	FileErrorRofs
	FileErrorTxtbsy
	FileErrorFault
	FileErrorLoop
	FileErrorNospc
	FileErrorNomem
	FileErrorMfile
	FileErrorNfile
	FileErrorBadf
	FileErrorInval
	FileErrorPipe
	FileErrorAgain
	FileErrorIntr
	FileErrorIO
	FileErrorPerm
	FileErrorNosys
	FileErrorFailed
)

var fileErrorNames = [...]string{
	FileErrorExist:       "G_FILE_ERROR_EXIST",
	FileErrorIsDir:       "G_FILE_ERROR_ISDIR",
	FileErrorAcces:       "G_FILE_ERROR_ACCES",
	FileErrorNameTooLong: "G_FILE_ERROR_NAMETOOLONG",
	FileErrorNoent:       "G_FILE_ERROR_NOENT",
	FileErrorNotDir:      "G_FILE_ERROR_NOTDIR",
	FileErrorNxio:        "G_FILE_ERROR_NXIO",
	FileErrorNodev:       "G_FILE_ERROR_NODEV",
	FileErrorRofs:        "G_FILE_ERROR_ROFS",
	FileErrorTxtbsy:      "G_FILE_ERROR_TXTBSY",
	FileErrorFault:       "G_FILE_ERROR_FAULT",
	FileErrorLoop:        "G_FILE_ERROR_LOOP",
	FileErrorNospc:       "G_FILE_ERROR_NOSPC",
	FileErrorNomem:       "G_FILE_ERROR_NOMEM",
	FileErrorMfile:       "G_FILE_ERROR_MFILE",
	FileErrorNfile:       "G_FILE_ERROR_NFILE",
	FileErrorBadf:        "G_FILE_ERROR_BADF",
	FileErrorInval:       "G_FILE_ERROR_INVAL",
	FileErrorPipe:        "G_FILE_ERROR_PIPE",
	FileErrorAgain:       "G_FILE_ERROR_AGAIN",
	FileErrorIntr:        "G_FILE_ERROR_INTR",
	FileErrorIO:          "G_FILE_ERROR_IO",
	FileErrorPerm:        "G_FILE_ERROR_PERM",
	FileErrorNosys:       "G_FILE_ERROR_NOSYS",
	FileErrorFailed:      "G_FILE_ERROR_FAILED",
}

func (FileError) Domain() quark.Quark { return fileErrorQuark.Get() }
func (c FileError) Code() int         { return int(c) }
func (c FileError) Known() bool       { return c >= 0 && int(c) < len(fileErrorNames) }

func (c FileError) String() string {
	if c.Known() {
		return fileErrorNames[c]
	}
	return fmt.Sprintf("FileError(%d)", int32(c))
}

// Error makes FileError usable as an errors.Is target.
func (c FileError) Error() string { return c.String() }

// FileErrors returns every defined FileError in native order.
func FileErrors() []FileError {
	out := make([]FileError, len(fileErrorNames))
	for i := range out {
		out[i] = FileError(i)
	}
	return out
}

var errnoToFileError = map[syscall.Errno]FileError{
	syscall.EEXIST:       FileErrorExist,
	syscall.EISDIR:       FileErrorIsDir,
	syscall.EACCES:       FileErrorAcces,
	syscall.ENAMETOOLONG: FileErrorNameTooLong,
	syscall.ENOENT:       FileErrorNoent,
	syscall.ENOTDIR:      FileErrorNotDir,
	syscall.ENXIO:        FileErrorNxio,
	syscall.ENODEV:       FileErrorNodev,
	syscall.EROFS:        FileErrorRofs,
	syscall.ETXTBSY:      FileErrorTxtbsy,
	syscall.EFAULT:       FileErrorFault,
	syscall.ELOOP:        FileErrorLoop,
	syscall.ENOSPC:       FileErrorNospc,
	syscall.ENOMEM:       FileErrorNomem,
	syscall.EMFILE:       FileErrorMfile,
	syscall.ENFILE:       FileErrorNfile,
	syscall.EBADF:        FileErrorBadf,
	syscall.EINVAL:       FileErrorInval,
	syscall.EPIPE:        FileErrorPipe,
	syscall.EAGAIN:       FileErrorAgain,
	syscall.EINTR:        FileErrorIntr,
	syscall.EIO:          FileErrorIO,
	syscall.EPERM:        FileErrorPerm,
	syscall.ENOSYS:       FileErrorNosys,
}

// FileErrorFromErrno maps an errno to its FileError, like
// g_file_error_from_errno. Unmapped values yield FileErrorFailed.
func FileErrorFromErrno(errno syscall.Errno) FileError {
	if c, ok := errnoToFileError[errno]; ok {
		return c
	}
	return FileErrorFailed
}

// ConvertError is the GConvertError enumeration, raised by charset
// conversion.
type ConvertError int32

const (
	ConvertErrorNoConversion    = ConvertError(native.ConvertNoConversion)
	ConvertErrorIllegalSequence = ConvertError(native.ConvertIllegalSequence)
	ConvertErrorFailed          = ConvertError(native.ConvertFailed)
	ConvertErrorPartialInput    = ConvertError(native.ConvertPartialInput)
	ConvertErrorBadURI          = ConvertError(native.ConvertBadURI)
	ConvertErrorNotAbsolutePath = ConvertError(native.ConvertNotAbsolutePath)
	ConvertErrorNoMemory        = ConvertError(native.ConvertNoMemory)
	ConvertErrorEmbeddedNUL     = ConvertError(native.ConvertEmbeddedNUL)
)

var convertErrorNames = [...]string{
	ConvertErrorNoConversion:    "G_CONVERT_ERROR_NO_CONVERSION",
	ConvertErrorIllegalSequence: "G_CONVERT_ERROR_ILLEGAL_SEQUENCE",
	ConvertErrorFailed:          "G_CONVERT_ERROR_FAILED",
	ConvertErrorPartialInput:    "G_CONVERT_ERROR_PARTIAL_INPUT",
	ConvertErrorBadURI:          "G_CONVERT_ERROR_BAD_URI",
	ConvertErrorNotAbsolutePath: "G_CONVERT_ERROR_NOT_ABSOLUTE_PATH",
	ConvertErrorNoMemory:        "G_CONVERT_ERROR_NO_MEMORY",
	ConvertErrorEmbeddedNUL:     "G_CONVERT_ERROR_EMBEDDED_NUL",
}

func (ConvertError) Domain() quark.Quark { return convertErrorQuark.Get() }
func (c ConvertError) Code() int         { return int(c) }
func (c ConvertError) Known() bool       { return c >= 0 && int(c) < len(convertErrorNames) }

func (c ConvertError) String() string {
	if c.Known() {
		return convertErrorNames[c]
	}
	return fmt.Sprintf("ConvertError(%d)", int32(c))
}

func (c ConvertError) Error() string { return c.String() }
