package app_errors

import "errors"

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrIncorrectPassword = errors.New("incorrect password")
var ErrTokenNotFound = errors.New("token not found")
var ErrTokenExpired = errors.New("token expired")
var ErrCourseNotFound = errors.New("course not found")
var ErrNotCourseAuthor = errors.New("you are not course author")
var ErrCourseNotPublished = errors.New("course not published")
var ErrAlreadyEnrolled = errors.New("user is already enrolled in course")
var ErrEnrollmentNotFound = errors.New("enrollment not found")
var ErrQuizNotFound = errors.New("quiz not found in course")
var ErrInvalidModules = errors.New("invalid course modules")
var ErrNotImage = errors.New("not image")
var ErrFileSize = errors.New("file size error")
